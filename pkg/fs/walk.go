package fs

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
)

// ImageExt lists the file extensions Images considers.
var ImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Images returns the sorted names of decodable image files below dir. Hidden
// files and directories are skipped.
func Images(dir string) (result []string, err error) {
	err = godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(fileName string, info *godirwalk.Dirent) error {
			base := filepath.Base(fileName)

			if fileName != dir && strings.HasPrefix(base, ".") {
				if info.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			if info.IsDir() {
				return nil
			}

			if ImageExt[strings.ToLower(filepath.Ext(base))] && FileImageType(fileName).Decodable() {
				result = append(result, fileName)
			}

			return nil
		},
		Unsorted:            true,
		FollowSymbolicLinks: false,
	})

	sort.Strings(result)

	return result, err
}
