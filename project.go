package main

import (
	"encoding/json"
	"fmt"
	"os"

	"stockflow/core"
)

// projectFile is the on-disk JSON format: a name plus a flat list of
// elements, each tagged with its kind.
type projectFile struct {
	Name     string            `json:"name,omitempty"`
	Elements []json.RawMessage `json:"elements"`
}

// loadProject reads a project file and decodes its elements.
func loadProject(filename string) ([]core.Element, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading project: %w", err)
	}

	var pf projectFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}

	elements := make([]core.Element, 0, len(pf.Elements))
	for i, raw := range pf.Elements {
		el, err := decodeElement(raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements = append(elements, el)
	}
	return elements, nil
}

func decodeElement(raw json.RawMessage) (core.Element, error) {
	var kind struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &kind); err != nil {
		return nil, err
	}

	var el core.Element
	var err error
	switch kind.Type {
	case "stock":
		var v core.Stock
		err = json.Unmarshal(raw, &v)
		el = v
	case "cloud":
		var v core.Cloud
		err = json.Unmarshal(raw, &v)
		el = v
	case "aux":
		var v core.Aux
		err = json.Unmarshal(raw, &v)
		el = v
	case "flow":
		var v core.Flow
		err = json.Unmarshal(raw, &v)
		el = v
	case "link":
		var v core.Link
		err = json.Unmarshal(raw, &v)
		el = v
	case "module":
		var v core.Module
		err = json.Unmarshal(raw, &v)
		el = v
	case "alias":
		var v core.Alias
		err = json.Unmarshal(raw, &v)
		el = v
	case "group":
		var v core.Group
		err = json.Unmarshal(raw, &v)
		el = v
	default:
		return nil, fmt.Errorf("unknown element type %q", kind.Type)
	}
	return el, err
}

// saveProject writes the elements back out, re-tagging each with its kind.
func saveProject(filename string, elements []core.Element) error {
	pf := projectFile{Elements: make([]json.RawMessage, 0, len(elements))}
	for _, el := range elements {
		raw, err := encodeElement(el)
		if err != nil {
			return fmt.Errorf("element %d: %w", el.UID(), err)
		}
		pf.Elements = append(pf.Elements, raw)
	}

	data, err := json.MarshalIndent(&pf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, append(data, '\n'), 0644)
}

func encodeElement(el core.Element) (json.RawMessage, error) {
	body, err := json.Marshal(el)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	m["type"] = typeName(el)
	return json.Marshal(m)
}

func typeName(el core.Element) string {
	switch el.(type) {
	case core.Stock:
		return "stock"
	case core.Cloud:
		return "cloud"
	case core.Aux:
		return "aux"
	case core.Flow:
		return "flow"
	case core.Link:
		return "link"
	case core.Module:
		return "module"
	case core.Alias:
		return "alias"
	case core.Group:
		return "group"
	}
	return ""
}
