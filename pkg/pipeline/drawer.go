package pipeline

import (
	"io"
	"os"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

type drawer struct {
	dotFileName string
	graph       graph.Graph[string, string]
	steps       map[string]struct{}
}

func newDrawer(dotFileName string) *drawer {
	return &drawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
		steps:       make(map[string]struct{}),
	}
}

func (d *drawer) addStep(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}
	d.steps[name] = struct{}{}

	return nil
}

func (d *drawer) addLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	return nil
}

// addMeasure attaches the average duration of every measured step as an
// external label on its vertex.
func (d *drawer) addMeasure(msr *Measure) error {
	for name, mt := range msr.AllMetrics() {
		if _, ok := d.steps[name]; !ok {
			continue
		}
		avg := mt.AVGDuration()
		if avg == 0 {
			continue
		}
		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrapf(err, "unable to get vertex properties for %s", name)
		}
		properties.Attributes["xlabel"] = avg.String()
		if total := mt.TotalDuration(); total > 0 {
			properties.Attributes["xlabel"] += ", end: " + total.String()
		}
	}

	return nil
}

func (d *drawer) draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = dot(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to render dot file %s", d.dotFileName)
	}

	return nil
}

const dotTemplate = `strict {{.GraphType}} {
	{{range $s := .Statements}}
	"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
}
`

type description struct {
	GraphType    string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceWeight     int
	SourceAttributes map[string]string
	EdgeWeight       int
}

func dot[K comparable, T any](g graph.Graph[K, T], w io.Writer) error {
	desc, err := generateDOT(g)
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	return renderDOT(w, desc)
}

func generateDOT[K comparable, T any](g graph.Graph[K, T]) (description, error) {
	desc := description{
		GraphType:    "graph",
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	if g.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return desc, err
	}

	for vertex, adjacencies := range adjacencyMap {
		_, sourceProperties, err := g.VertexWithProperties(vertex)
		if err != nil {
			return desc, err
		}

		stmt := statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceProperties.Attributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		for adjacency, edge := range adjacencies {
			stmt := statement{
				Source:     vertex,
				Target:     adjacency,
				EdgeWeight: edge.Properties.Weight,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(w io.Writer, d description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	return tpl.Execute(w, d)
}
