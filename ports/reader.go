package ports

import (
	"io"

	"statcompare/domain/dataset"
)

// TableReaderPort loads an uploaded file into a Table
type TableReaderPort interface {
	// ReadUpload picks the format from the file name and parses the whole stream
	ReadUpload(filename string, src io.Reader) (*dataset.Table, error)
}
