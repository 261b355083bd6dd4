package upload

import (
	"fmt"
	"io"
	"mime/multipart"
)

// Field is one named multipart value, decided once at parse time.
// It is either a FileField or a TextField.
type Field interface {
	FieldName() string
	isField()
}

// FileField is a file attachment
type FileField struct {
	Name      string
	Filename  string
	MediaType string
	Data      []byte
}

// TextField is a plain form value
type TextField struct {
	Name  string
	Value string
}

func (f FileField) FieldName() string { return f.Name }
func (f TextField) FieldName() string { return f.Name }

func (FileField) isField() {}
func (TextField) isField() {}

// ParseField extracts the named field from a parsed multipart form.
// It returns nil when the form has no such field. File content is read
// through a limit of MaxFileSize+1 bytes, so an oversized upload is
// still reported as oversized without buffering all of it.
func ParseField(form *multipart.Form, name string) (Field, error) {
	if form == nil {
		return nil, nil
	}

	if headers := form.File[name]; len(headers) > 0 {
		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %q: %w", header.Filename, err)
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %q: %w", header.Filename, err)
		}

		return FileField{
			Name:      name,
			Filename:  header.Filename,
			MediaType: header.Header.Get("Content-Type"),
			Data:      data,
		}, nil
	}

	if values := form.Value[name]; len(values) > 0 {
		return TextField{Name: name, Value: values[0]}, nil
	}

	return nil, nil
}
