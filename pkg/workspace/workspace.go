// Package workspace models the documents, projects and solutions that
// analysis and batch fixing operate on. All types are immutable values:
// updates return new values and leave the receiver untouched.
package workspace

import (
	"iter"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/leapstack-labs/sharplint/pkg/parser"
	"github.com/leapstack-labs/sharplint/pkg/semantic"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

// Source flavors. Severities can be overridden per flavor.
const (
	FlavorCSharp = "csharp"
	FlavorScript = "script"
)

// Extensions maps source file extensions to flavors.
var Extensions = map[string]string{
	".cs":  FlavorCSharp,
	".csx": FlavorScript,
}

// FlavorForPath returns the flavor of a file by extension, or "" when the
// file is not a source file.
func FlavorForPath(path string) string {
	return Extensions[strings.ToLower(filepath.Ext(path))]
}

// DocumentID identifies a document across edits.
type DocumentID string

// NewDocumentID returns a fresh random id.
func NewDocumentID() DocumentID {
	return DocumentID(uuid.NewString())
}

// Document is one parsed source file.
type Document struct {
	ID     DocumentID
	Path   string
	Flavor string
	Tree   *syntax.Tree
}

// NewDocument parses text into a document.
func NewDocument(path, text string) (Document, error) {
	tree, err := parser.Parse(path, text)
	if err != nil {
		return Document{}, err
	}
	flavor := FlavorForPath(path)
	if flavor == "" {
		flavor = FlavorCSharp
	}
	return Document{ID: NewDocumentID(), Path: path, Flavor: flavor, Tree: tree}, nil
}

// WithRoot returns the document with a new syntax root; the id is kept.
func (d Document) WithRoot(root *syntax.Node) Document {
	d.Tree = d.Tree.WithRoot(root)
	return d
}

// Text returns the full source text.
func (d Document) Text() string {
	return d.Tree.Text()
}

// Project is a named set of documents bound together.
type Project struct {
	Name      string
	Documents []Document
}

// NewProject returns a project over docs.
func NewProject(name string, docs ...Document) Project {
	return Project{Name: name, Documents: docs}
}

// Document returns the document with id.
func (p Project) Document(id DocumentID) (Document, bool) {
	for _, d := range p.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return Document{}, false
}

// WithDocument returns the project with the document of the same id replaced,
// or appended when the project does not contain it.
func (p Project) WithDocument(doc Document) Project {
	docs := make([]Document, 0, len(p.Documents)+1)
	replaced := false
	for _, d := range p.Documents {
		if d.ID == doc.ID {
			d, replaced = doc, true
		}
		docs = append(docs, d)
	}
	if !replaced {
		docs = append(docs, doc)
	}
	p.Documents = docs
	return p
}

// Trees returns the syntax trees of the documents.
func (p Project) Trees() []*syntax.Tree {
	trees := make([]*syntax.Tree, len(p.Documents))
	for i, d := range p.Documents {
		trees[i] = d.Tree
	}
	return trees
}

// Compilation binds the documents of the project.
func (p Project) Compilation(opts ...semantic.Option) *semantic.Compilation {
	return semantic.NewCompilation(p.Trees(), opts...)
}

// Solution is the set of projects analyzed together.
type Solution struct {
	Projects []Project
}

// NewSolution returns a solution over projects.
func NewSolution(projects ...Project) Solution {
	return Solution{Projects: projects}
}

// Documents iterates over every document with its project.
func (s Solution) Documents() iter.Seq2[Project, Document] {
	return func(yield func(Project, Document) bool) {
		for _, p := range s.Projects {
			for _, d := range p.Documents {
				if !yield(p, d) {
					return
				}
			}
		}
	}
}

// Document returns the document with id and its project.
func (s Solution) Document(id DocumentID) (Document, Project, bool) {
	for p, d := range s.Documents() {
		if d.ID == id {
			return d, p, true
		}
	}
	return Document{}, Project{}, false
}

// DocumentByPath returns the document at path.
func (s Solution) DocumentByPath(path string) (Document, bool) {
	for _, d := range s.Documents() {
		if d.Path == path {
			return d, true
		}
	}
	return Document{}, false
}

// Project returns the project named name.
func (s Solution) Project(name string) (Project, bool) {
	for _, p := range s.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}

// WithDocument returns the solution with the document of the same id replaced.
func (s Solution) WithDocument(doc Document) Solution {
	projects := make([]Project, len(s.Projects))
	for i, p := range s.Projects {
		if _, ok := p.Document(doc.ID); ok {
			p = p.WithDocument(doc)
		}
		projects[i] = p
	}
	s.Projects = projects
	return s
}

// WithProject returns the solution with the project of the same name
// replaced, or appended.
func (s Solution) WithProject(project Project) Solution {
	projects := make([]Project, 0, len(s.Projects)+1)
	replaced := false
	for _, p := range s.Projects {
		if p.Name == project.Name {
			p, replaced = project, true
		}
		projects = append(projects, p)
	}
	if !replaced {
		projects = append(projects, project)
	}
	s.Projects = projects
	return s
}

// DocumentCount returns the number of documents in the solution.
func (s Solution) DocumentCount() int {
	n := 0
	for _, p := range s.Projects {
		n += len(p.Documents)
	}
	return n
}
