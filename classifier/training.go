package classifier

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/featurematch/descriptor"
	"github.com/viant/featurematch/extractor"
)

// TrainImages extracts descriptors from every image and registers them under
// name. Images that cannot be read are logged and left out.
func (c *Classifier) TrainImages(name string, images []string) error {
	if c.source == nil {
		return ErrNoSource
	}
	refNames := make([]string, 0, len(images))
	mats := make([]*descriptor.Matrix, 0, len(images))
	for _, image := range images {
		m, ok := c.extract(image)
		if !ok {
			continue
		}
		refNames = append(refNames, extractor.ReferenceName(image))
		mats = append(mats, m)
	}
	return c.train(name, refNames, mats)
}

// TrainDirs trains name from the images found under paths.
func (c *Classifier) TrainDirs(name string, recursive bool, paths ...string) error {
	images, err := listAll(recursive, paths, extractor.ImageSuffixes)
	if err != nil {
		return err
	}
	return c.TrainImages(name, images)
}

// TrainDescriptorFiles registers name from precomputed descriptor files.
// Files that fail to load are logged and left out; reference names are the
// file names without the descriptor suffix.
func (c *Classifier) TrainDescriptorFiles(name string, files []string) error {
	refNames := make([]string, 0, len(files))
	mats := make([]*descriptor.Matrix, 0, len(files))
	for _, file := range files {
		m, err := descriptor.Load(file)
		if err != nil {
			c.logger.Warn.Printf("skipping descriptor file: %v", err)
			continue
		}
		refNames = append(refNames, extractor.ReferenceName(file))
		mats = append(mats, m)
	}
	return c.train(name, refNames, mats)
}

// TrainDescriptorDirs trains name from the descriptor files of the configured
// extractor found under paths.
func (c *Classifier) TrainDescriptorDirs(name string, recursive bool, paths ...string) error {
	files, err := listAll(recursive, paths, []string{c.queryCfg.Type.DescriptorEnding()})
	if err != nil {
		return err
	}
	return c.TrainDescriptorFiles(name, files)
}

// PrecomputeDescriptors extracts descriptors from images and saves each one
// under outputDir, mirroring the image path below the images' common
// directory and appending the extractor's descriptor ending. It returns the
// saved file paths; unreadable images are logged and left out.
func (c *Classifier) PrecomputeDescriptors(images []string, outputDir string) ([]string, error) {
	if c.source == nil {
		return nil, ErrNoSource
	}
	base := commonDir(images)
	ending := c.trainCfg.Type.DescriptorEnding()
	var saved []string
	for _, image := range images {
		m, ok := c.extract(image)
		if !ok {
			continue
		}
		target := filepath.Join(outputDir, strings.TrimPrefix(image, base)+ending)
		if err := descriptor.Save(target, m); err != nil {
			return saved, err
		}
		saved = append(saved, target)
	}
	return saved, nil
}

// PrecomputeDirs precomputes descriptors for the images found under paths.
func (c *Classifier) PrecomputeDirs(outputDir string, recursive bool, paths ...string) ([]string, error) {
	images, err := listAll(recursive, paths, extractor.ImageSuffixes)
	if err != nil {
		return nil, err
	}
	return c.PrecomputeDescriptors(images, outputDir)
}

func (c *Classifier) extract(image string) (*descriptor.Matrix, bool) {
	m, err := c.source.ExtractFile(image, c.trainCfg)
	if err != nil {
		if errors.Is(err, extractor.ErrUnreadableImage) {
			c.logger.Warn.Printf("skipping unreadable image %s: %v", image, err)
		} else {
			c.logger.Err.Printf("failed to extract descriptors from %s: %v", image, err)
		}
		return nil, false
	}
	return m, true
}

func listAll(recursive bool, paths []string, suffixes []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		found, err := extractor.ListFiles(p, recursive, suffixes...)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// commonDir returns the longest common prefix of paths cut back to a
// directory boundary, including the trailing separator.
func commonDir(paths []string) string {
	prefix := extractor.LongestCommonPrefix(paths)
	return prefix[:strings.LastIndex(prefix, string(os.PathSeparator))+1]
}
