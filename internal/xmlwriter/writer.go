// =============================================================================
// HSN/SAC Validator - XML Writer Module
// =============================================================================
//
// This module renders validation results as an XML document, for systems
// that ingest reports as XML rather than JSON or spreadsheets.
//
// XML STRUCTURE:
//
//   <validationReport codeType="HSN">      <!-- Root element -->
//     <result n="1">                       <!-- One per code, input order -->
//       <code>0101</code>
//       <formatValid>true</formatValid>
//       <exists>true</exists>
//       <description>Live horses, asses, mules and hinnies</description>
//     </result>
//     <result n="2">
//       <code>ABC</code>
//       <formatValid>false</formatValid>
//       <exists>false</exists>
//       <description/>                     <!-- Empty description -->
//     </result>
//   </validationReport>
//
// Callers may add attributes to the root element (summary counts, for
// example) through GenerateOptions.RootAttributes.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// Element names of the report document.
const (
	RootElement    = "validationReport"
	ResultElement  = "result"
	IndexAttribute = "n"
)

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// RootAttributes are extra attributes for the root element, written
	// after codeType in key order.
	RootAttributes map[string]string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:         "  ",
		RootAttributes: make(map[string]string),
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates an XML document from the results with default options.
//
// PARAMETERS:
//   - results: The validation results, in display order.
//   - codeType: Written as the codeType attribute of the root element.
//
// RETURNS:
//   - The XML document as a byte slice.
//   - An error if generation fails.
func Generate(results []types.ValidationResult, codeType types.CodeType) ([]byte, error) {
	return GenerateWithOptions(results, codeType, DefaultGenerateOptions())
}

// GenerateWithOptions creates an XML document with custom options.
func GenerateWithOptions(results []types.ValidationResult, codeType types.CodeType, options GenerateOptions) ([]byte, error) {
	for key := range options.RootAttributes {
		if key == "" || key == "codeType" || strings.ContainsAny(key, " \t\n<>\"'=/&") {
			return nil, fmt.Errorf("invalid root attribute name %q", key)
		}
	}

	var buffer bytes.Buffer
	buffer.WriteString(xml.Header)

	doc := buildDocument(results, codeType, options)
	writeElement(&buffer, doc, options.Indent, 0)

	return buffer.Bytes(), nil
}

// Write generates the document and copies it to w.
func Write(w io.Writer, results []types.ValidationResult, codeType types.CodeType, options GenerateOptions) error {
	data, err := GenerateWithOptions(results, codeType, options)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// Element is a generic XML element: either a text value or children.
type Element struct {
	Name       string
	Attributes []xml.Attr
	Value      string
	Children   []Element
}

// buildDocument constructs the document element and one child per result.
func buildDocument(results []types.ValidationResult, codeType types.CodeType, options GenerateOptions) Element {
	doc := Element{
		Name: RootElement,
		Attributes: []xml.Attr{
			attr("codeType", codeType.String()),
		},
	}

	// Map iteration order is random; keep the output stable.
	keys := make([]string, 0, len(options.RootAttributes))
	for key := range options.RootAttributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		doc.Attributes = append(doc.Attributes, attr(key, options.RootAttributes[key]))
	}

	for i, r := range results {
		doc.Children = append(doc.Children, buildResultElement(r, i+1))
	}

	return doc
}

// buildResultElement constructs one result element.
//
// STRUCTURE:
//   <result n="1">
//     <code>0101</code>
//     <formatValid>true</formatValid>
//     <exists>true</exists>
//     <description>...</description>
//   </result>
func buildResultElement(r types.ValidationResult, index int) Element {
	element := Element{
		Name:       ResultElement,
		Attributes: []xml.Attr{attr(IndexAttribute, strconv.Itoa(index))},
	}

	element.Children = []Element{
		{Name: "code", Value: r.Code},
		{Name: "formatValid", Value: strconv.FormatBool(r.FormatValid)},
		{Name: "exists", Value: strconv.FormatBool(r.Exists)},
		{Name: "description", Value: r.Description},
	}

	return element
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// writeElement writes an element and its children with indentation.
func writeElement(buffer *bytes.Buffer, element Element, indent string, level int) {
	writeIndent(buffer, indent, level)

	buffer.WriteString("<")
	buffer.WriteString(element.Name)
	for _, a := range element.Attributes {
		fmt.Fprintf(buffer, " %s=\"%s\"", a.Name.Local, escapeXML(a.Value))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if len(element.Children) == 0 {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}
		writeIndent(buffer, indent, level)
	}

	buffer.WriteString("</")
	buffer.WriteString(element.Name)
	buffer.WriteString(">\n")
}

func writeIndent(buffer *bytes.Buffer, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}
}

// escapeXML escapes text and attribute values.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&buffer, []byte(s))
	return buffer.String()
}
