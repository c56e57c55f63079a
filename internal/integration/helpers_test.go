package integration

import (
	"compress/gzip"
	"os"
)

func writeGzip(path, data string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(fh)
	if _, err := zw.Write([]byte(data)); err != nil {
		_ = fh.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
