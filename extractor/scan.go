package extractor

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageSuffixes are the file suffixes accepted when scanning for images.
var ImageSuffixes = []string{".jpg", ".jpeg", ".png", ".gif"}

// ListFiles returns the files under root whose names end with one of
// suffixes (all files when none are given). Subdirectories are visited only
// when recursive is set. A root that is not a directory is returned as is.
func ListFiles(root string, recursive bool, suffixes ...string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && hasSuffix(d.Name(), suffixes) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func hasSuffix(name string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// ReferenceName derives the display name of a reference image from its image
// or descriptor file path: the base name with anything from the first
// descriptor suffix stripped.
func ReferenceName(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, DescriptorSuffix); i >= 0 {
		name = name[:i]
	}
	for _, t := range Types {
		name = strings.TrimSuffix(name, "."+strings.ToLower(t.String()))
	}
	return name
}

// LongestCommonPrefix returns the longest string prefix shared by all paths.
func LongestCommonPrefix(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	prefix := paths[0]
	for _, p := range paths[1:] {
		n := 0
		for n < len(prefix) && n < len(p) && prefix[n] == p[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}
