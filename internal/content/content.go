// Package content loads the story-content table the query core consumes:
// node and archive titles, per-node revealed keywords, keyword labels and
// the evidence combinations. Prose itself lives with the front-ends.
package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tatianab/memory-dive/internal/dialogue"
	"github.com/tatianab/memory-dive/internal/progress"
	"github.com/tatianab/memory-dive/internal/trigger"
)

//go:embed data/story.yaml
var storyYAML []byte

//go:embed data/dialogue.yaml
var dialogueYAML []byte

// KeywordKind says which collection a keyword is filed into.
type KeywordKind string

const (
	KindClue    KeywordKind = "clue"
	KindPerson  KeywordKind = "person"
	KindYear    KeywordKind = "year"
	KindDossier KeywordKind = "dossier"
)

// Node is the core's view of one story node.
type Node struct {
	ID               string   `yaml:"id"`
	Title            string   `yaml:"title"`
	RevealedKeywords []string `yaml:"revealed_keywords"`
}

// Archive is the core's view of one archive record.
type Archive struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// Keyword describes a collectible keyword.
type Keyword struct {
	Kind  KeywordKind `yaml:"kind"`
	Label string      `yaml:"label"`
}

type combo struct {
	Year    string `yaml:"year"`
	Person  string `yaml:"person"`
	Archive string `yaml:"archive"`
}

type story struct {
	StartNodes []string           `yaml:"start_nodes"`
	Nodes      []Node             `yaml:"nodes"`
	Archives   []Archive          `yaml:"archives"`
	Combos     []combo            `yaml:"combos"`
	Keywords   map[string]Keyword `yaml:"keywords"`
}

// Catalog is the validated, indexed story table.
type Catalog struct {
	StartNodes []string
	Nodes      []Node
	Archives   []Archive
	Keywords   map[string]Keyword
	Combos     []progress.Combo
	Dialogue   dialogue.Config

	nodes    map[string]Node
	archives map[string]Archive
}

// Load parses the embedded tables and validates them against the trigger
// rules.
func Load() (*Catalog, error) {
	return Parse(storyYAML, dialogueYAML)
}

// Parse builds a Catalog from raw YAML. Any reference from a trigger rule,
// combination or node to an entry that does not exist is an error.
func Parse(storyData, dialogueData []byte) (*Catalog, error) {
	var st story
	if err := yaml.Unmarshal(storyData, &st); err != nil {
		return nil, fmt.Errorf("parse story table: %w", err)
	}
	var dc dialogue.Config
	if err := yaml.Unmarshal(dialogueData, &dc); err != nil {
		return nil, fmt.Errorf("parse dialogue table: %w", err)
	}

	c := &Catalog{
		StartNodes: st.StartNodes,
		Nodes:      st.Nodes,
		Archives:   st.Archives,
		Keywords:   st.Keywords,
		Dialogue:   dc,
		nodes:      make(map[string]Node, len(st.Nodes)),
		archives:   make(map[string]Archive, len(st.Archives)),
	}
	if c.Keywords == nil {
		c.Keywords = map[string]Keyword{}
	}
	for _, n := range st.Nodes {
		c.nodes[n.ID] = n
	}
	for _, a := range st.Archives {
		c.archives[a.ID] = a
	}
	for _, cb := range st.Combos {
		c.Combos = append(c.Combos, progress.Combo{
			Year:    cb.Year,
			Person:  cb.Person,
			Archive: cb.Archive,
			Title:   c.archives[cb.Archive].Title,
		})
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("validate story table: %w", err)
	}
	return c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	if len(c.nodes) != len(c.Nodes) {
		errs = append(errs, errors.New("duplicate node id"))
	}
	if len(c.archives) != len(c.Archives) {
		errs = append(errs, errors.New("duplicate archive id"))
	}
	for _, id := range c.StartNodes {
		if !c.HasNode(id) {
			errs = append(errs, fmt.Errorf("start node %q does not exist", id))
		}
	}
	for _, n := range c.Nodes {
		for _, kw := range n.RevealedKeywords {
			if _, ok := c.Keywords[kw]; !ok {
				errs = append(errs, fmt.Errorf("node %s reveals unknown keyword %q", n.ID, kw))
			}
		}
	}
	for _, cb := range c.Combos {
		if !c.HasArchive(cb.Archive) {
			errs = append(errs, fmt.Errorf("combination %s+%s: unknown archive %q", cb.Year, cb.Person, cb.Archive))
		}
		if c.Keywords[cb.Year].Kind != KindYear {
			errs = append(errs, fmt.Errorf("combination %s+%s: %q is not a year", cb.Year, cb.Person, cb.Year))
		}
		if c.Keywords[cb.Person].Kind != KindPerson {
			errs = append(errs, fmt.Errorf("combination %s+%s: %q is not a person", cb.Year, cb.Person, cb.Person))
		}
	}
	for _, s := range c.Dialogue.Sentinels {
		if s.Threshold < 1 || s.Query == "" {
			errs = append(errs, fmt.Errorf("sentinel %q needs a threshold and a query", s.Keyword))
		}
	}
	if err := trigger.Validate(trigger.NewResolver().Rules(), c.Exists); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Exists reports whether the target of a trigger action is in the table.
func (c *Catalog) Exists(a trigger.Action) bool {
	if a.Kind == trigger.RevealArchive {
		return c.HasArchive(a.ID)
	}
	return c.HasNode(a.ID)
}

// HasNode reports whether id is a known node.
func (c *Catalog) HasNode(id string) bool {
	_, ok := c.nodes[id]
	return ok
}

// HasArchive reports whether id is a known archive.
func (c *Catalog) HasArchive(id string) bool {
	_, ok := c.archives[id]
	return ok
}

// Title returns the display title for an action's target, falling back to
// the ID.
func (c *Catalog) Title(a trigger.Action) string {
	if a.Kind == trigger.RevealArchive {
		if ar, ok := c.archives[a.ID]; ok {
			return ar.Title
		}
		return a.ID
	}
	if n, ok := c.nodes[a.ID]; ok {
		return n.Title
	}
	return a.ID
}

// Revealed returns the keywords node id reveals.
func (c *Catalog) Revealed(id string) []string {
	return c.nodes[id].RevealedKeywords
}

// Label returns the display label for a keyword, falling back to the ID.
func (c *Catalog) Label(id string) string {
	if kw, ok := c.Keywords[id]; ok && kw.Label != "" {
		return kw.Label
	}
	return id
}
