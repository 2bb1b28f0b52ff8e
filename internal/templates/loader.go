package templates

import (
	"os"

	"gopkg.in/yaml.v2"

	"statement-ingestion-service/pkg/errors"
	"statement-ingestion-service/pkg/logger"
)

// templateFile is the on-disk shape of a user template file
type templateFile struct {
	Templates []*Template `yaml:"templates"`
}

// LoadFile reads additional statement templates from a YAML file. The file
// holds a top-level "templates" list; each entry uses the same shape as
// the built-in profiles:
//
//	templates:
//	  - id: mybank
//	    name: My Bank
//	    source_name: My Bank
//	    source_type: bank
//	    aliases:
//	      date: [date, txn_date]
//	      amount: [amount]
func LoadFile(path string) ([]*Template, error) {
	log := logger.WithComponent("template_loader")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.TemplateError(errors.CodeInvalidTemplate, path, err).
			WithContext("file_path", path)
	}

	for _, t := range file.Templates {
		if err := t.Validate(); err != nil {
			return nil, errors.TemplateError(errors.CodeInvalidTemplate, t.ID, err).
				WithContext("file_path", path)
		}
	}

	log.WithFields(logger.Fields{
		"file_path": path,
		"count":     len(file.Templates),
	}).Debug("Loaded statement templates")

	return file.Templates, nil
}

// LoadRegistry builds a registry from the built-in templates plus an
// optional user template file. An empty path returns the default registry.
func LoadRegistry(path string) (*Registry, error) {
	ts := Builtin()
	if path != "" {
		extra, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		ts = append(ts, extra...)
	}
	return NewRegistry(ts...)
}
