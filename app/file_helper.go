package app

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper collects gene-profile input files from the filesystem.
type FileHelper struct{}

// NewFileHelper creates a new FileHelper.
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectProfileFiles collects profile files from paths. A path that is
// itself a file is included directly (regardless of extension); a
// directory is walked (recursively if recursive is true), honoring
// excludePatterns. The directory's .gitignore is honored only in a
// recursive walk; a non-recursive listing does not read it.
func (h *FileHelper) CollectProfileFiles(paths []string, recursive bool, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !h.isExcluded(path, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		if recursive {
			gi := loadGitIgnore(path)

			err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				if gi != nil {
					relPath, relErr := filepath.Rel(path, filePath)
					if relErr == nil && gi.MatchesPath(relPath) {
						if info.IsDir() {
							return filepath.SkipDir
						}
						return nil
					}
				}

				if info.IsDir() {
					dirName := filepath.Base(filePath)
					for _, pattern := range excludePatterns {
						if pattern == dirName {
							return filepath.SkipDir
						}
						if matched, err := filepath.Match(pattern, dirName); err == nil && matched {
							return filepath.SkipDir
						}
					}
					return nil
				}

				if h.isProfileFile(filePath) && !h.isExcluded(filePath, excludePatterns) {
					files = append(files, filePath)
				}

				return nil
			})
		} else {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, err
			}

			for _, entry := range entries {
				if !entry.IsDir() {
					filePath := filepath.Join(path, entry.Name())
					if h.isProfileFile(filePath) && !h.isExcluded(filePath, excludePatterns) {
						files = append(files, filePath)
					}
				}
			}
		}

		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsValidProfileFile checks if a file looks like a profile file based on
// extension.
func (h *FileHelper) IsValidProfileFile(path string) bool {
	return h.isProfileFile(path)
}

// FileExists checks if a file exists.
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// isProfileFile checks if a file is a gene-profile file based on extension.
func (h *FileHelper) isProfileFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".profile" || ext == ".tsv" || ext == ".txt"
}

// isExcluded checks if a path matches any exclude pattern.
func (h *FileHelper) isExcluded(path string, excludePatterns []string) bool {
	baseName := filepath.Base(path)
	for _, pattern := range excludePatterns {
		if matched, err := filepath.Match(pattern, baseName); err == nil && matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// loadGitIgnore loads a .gitignore file from the root directory. Returns
// nil if the file does not exist or cannot be read.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gitignorePath := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(gitignorePath)
	if err != nil {
		return nil
	}
	return gi
}

// ResolveFilePaths resolves file paths, returning existing files directly
// or collecting profile files from directories.
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	excludePatterns []string,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectProfileFiles(paths, recursive, excludePatterns)
}
