package govsync

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var schemaMessagePrinter = message.NewPrinter(language.English)

const (
	// DefaultManifestFileName is the manifest looked up inside the source
	// repository when no --manifest flag is given.
	DefaultManifestFileName = "governance.yaml"

	// DefaultSourceDirectoryName is the canonical source repository directory
	// assumed when the manifest omits one.
	DefaultSourceDirectoryName = ".github"

	manifestSchemaResourceNameConstant = "manifest.schema.json"
	manifestReadErrorTemplateConstant  = "read manifest %s: %w"
	manifestParseErrorTemplateConstant = "parse manifest %s: %w"
	manifestSchemaErrorTemplate        = "manifest %s invalid: %s"
	licenseSidecarSuffixConstant       = ".license"
)

//go:embed manifest.schema.json
var manifestSchemaJSON []byte

var manifestSchema *jsonschema.Schema

func init() {
	var schemaDocument any
	if unmarshalError := json.Unmarshal(manifestSchemaJSON, &schemaDocument); unmarshalError != nil {
		panic(fmt.Sprintf("parse embedded %s: %v", manifestSchemaResourceNameConstant, unmarshalError))
	}

	schemaCompiler := jsonschema.NewCompiler()
	if resourceError := schemaCompiler.AddResource(manifestSchemaResourceNameConstant, schemaDocument); resourceError != nil {
		panic(fmt.Sprintf("add %s resource: %v", manifestSchemaResourceNameConstant, resourceError))
	}

	compiledSchema, compileError := schemaCompiler.Compile(manifestSchemaResourceNameConstant)
	if compileError != nil {
		panic(fmt.Sprintf("compile %s: %v", manifestSchemaResourceNameConstant, compileError))
	}
	manifestSchema = compiledSchema
}

// Manifest declares which files are mirrored into every target repository
// and which workspace directories are never treated as targets.
type Manifest struct {
	Source  string   `yaml:"source"`
	Files   []string `yaml:"files"`
	Exclude []string `yaml:"exclude"`
}

// DefaultManifest is the built-in manifest used when the workspace carries
// none of its own: the community health files and their license side-cars,
// sourced from the organization .github repository.
func DefaultManifest() Manifest {
	documentNames := []string{"CONTRIBUTING.md", "CODE_OF_CONDUCT.md", "SECURITY.md", "SUPPORT.md"}
	trackedFiles := make([]string, 0, len(documentNames)*2)
	for _, documentName := range documentNames {
		trackedFiles = append(trackedFiles, documentName, documentName+licenseSidecarSuffixConstant)
	}
	return Manifest{Source: DefaultSourceDirectoryName, Files: trackedFiles}
}

// LoadManifest reads and validates the manifest at manifestPath. A missing
// file falls back to DefaultManifest; an unreadable, unparsable, or
// schema-violating file is a configuration error.
func LoadManifest(manifestPath string) (Manifest, error) {
	manifestBytes, readError := os.ReadFile(manifestPath)
	if os.IsNotExist(readError) {
		return DefaultManifest(), nil
	}
	if readError != nil {
		return Manifest{}, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}

	var yamlDocument any
	if unmarshalError := yaml.Unmarshal(manifestBytes, &yamlDocument); unmarshalError != nil {
		return Manifest{}, fmt.Errorf(manifestParseErrorTemplateConstant, manifestPath, unmarshalError)
	}

	if validationError := manifestSchema.Validate(yamlDocument); validationError != nil {
		return Manifest{}, fmt.Errorf(manifestSchemaErrorTemplate, manifestPath, flattenSchemaError(validationError))
	}

	var loadedManifest Manifest
	if decodeError := yaml.Unmarshal(manifestBytes, &loadedManifest); decodeError != nil {
		return Manifest{}, fmt.Errorf(manifestParseErrorTemplateConstant, manifestPath, decodeError)
	}
	if len(strings.TrimSpace(loadedManifest.Source)) == 0 {
		loadedManifest.Source = DefaultSourceDirectoryName
	}
	return loadedManifest, nil
}

func flattenSchemaError(validationError error) string {
	structuredError, isValidationError := validationError.(*jsonschema.ValidationError)
	if !isValidationError {
		return validationError.Error()
	}

	var messages []string
	collectSchemaErrorMessages(structuredError, &messages)
	return strings.Join(messages, "; ")
}

func collectSchemaErrorMessages(structuredError *jsonschema.ValidationError, messages *[]string) {
	if len(structuredError.Causes) == 0 {
		instanceLocation := "/"
		if len(structuredError.InstanceLocation) > 0 {
			instanceLocation = "/" + strings.Join(structuredError.InstanceLocation, "/")
		}
		*messages = append(*messages, fmt.Sprintf("%s: %s", instanceLocation, structuredError.ErrorKind.LocalizedString(schemaMessagePrinter)))
		return
	}
	for _, cause := range structuredError.Causes {
		collectSchemaErrorMessages(cause, messages)
	}
}
