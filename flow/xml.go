package flow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/ardnew/flowc/lang"
)

// ErrNotFlow is returned when an XML document has no Flow root element.
var ErrNotFlow = lang.NewError("input is not valid flow data")

// Node types and sockets of the Flow XML format.
const (
	nodeVariable = "Variable"
	nodeData     = "Data"
	socketOut    = "Out"
)

// LoadXML reads a Flow XML document.
//
// Every Node of type Variable becomes an entry named by its Name attribute
// and typed by its Inherits attribute. A Connection whose Target is the
// variable's Out socket and whose Source belongs to a Data node adds the
// Data node's Inherits text to the entry's sources. The Arguments attribute
// is parsed with [ParseArguments]. A Requires attribute on the Flow element
// is a version constraint checked as in [LoadYAML].
func LoadXML(ctx context.Context, r io.Reader, opts ...Option) (*Graph, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, lang.ErrReadInput.Wrap(err)
	}

	root := doc.SelectElement("Flow")
	if root == nil {
		return nil, ErrNotFlow
	}

	if err := checkVersion(root.SelectAttrValue("Requires", ""), makeOptions(opts...)); err != nil {
		return nil, err
	}

	nodes := make(map[string]*etree.Element)
	for _, n := range root.SelectElements("Node") {
		nodes[n.SelectAttrValue("Id", "")] = n
	}

	// Sources feeding each "<id>.<socket>" target, in document order.
	incoming := make(map[string][]string)

	for _, c := range root.SelectElements("Connection") {
		src, _, ok := splitEndpoint(c.SelectAttrValue("Source", ""))
		if !ok {
			continue
		}

		target := c.SelectAttrValue("Target", "")
		incoming[target] = append(incoming[target], src)
	}

	var entries []*Entry

	for _, n := range doc.FindElements("/Flow/Node[@Type='" + nodeVariable + "']") {
		id := n.SelectAttrValue("Id", "")
		e := &Entry{
			ID:        id,
			Name:      n.SelectAttrValue("Name", ""),
			Type:      n.SelectAttrValue("Inherits", ""),
			Arguments: ParseArguments(n.SelectAttrValue("Arguments", "")),
		}

		for _, srcID := range incoming[id+"."+socketOut] {
			data, ok := nodes[srcID]
			if !ok || data.SelectAttrValue("Type", "") != nodeData {
				continue
			}

			if text := data.SelectAttrValue("Inherits", ""); strings.TrimSpace(text) != "" {
				e.Sources = append(e.Sources, text)
			}
		}

		entries = append(entries, e)
	}

	g, err := New(entries, opts...)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "flow document read",
		slog.String("format", "xml"),
		slog.Int("nodes", len(nodes)),
		slog.Int("connections", len(root.SelectElements("Connection"))))

	return g, nil
}

func splitEndpoint(s string) (node, socket string, ok bool) {
	return strings.Cut(s, ".")
}

// WriteXML writes entries as a Flow XML document that [LoadXML] reads back.
// Each source becomes a Data node connected to the Out socket of its
// entry's Variable node.
func WriteXML(w io.Writer, entries []*Entry, indent int) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Flow")

	for i, e := range entries {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("v%d", i)
		}

		node := root.CreateElement("Node")
		node.CreateAttr("Id", id)
		node.CreateAttr("Type", nodeVariable)
		node.CreateAttr("Name", e.Name)
		node.CreateAttr("Inherits", e.Type)

		if len(e.Arguments) > 0 {
			node.CreateAttr("Arguments", strings.Join(e.Arguments, " "))
		}

		for j, src := range e.Sources {
			dataID := fmt.Sprintf("%s_d%d", id, j)

			data := root.CreateElement("Node")
			data.CreateAttr("Id", dataID)
			data.CreateAttr("Type", nodeData)
			data.CreateAttr("Inherits", src)

			conn := root.CreateElement("Connection")
			conn.CreateAttr("Source", dataID+"."+socketOut)
			conn.CreateAttr("Target", id+"."+socketOut)
		}
	}

	doc.Indent(indent)

	if _, err := doc.WriteTo(w); err != nil {
		return lang.WrapError(err)
	}

	return nil
}
