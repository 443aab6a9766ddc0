package adapters

import (
	"fmt"
	"regexp"

	"github.com/ppiankov/faqharvest/internal/extract"
	"github.com/ppiankov/faqharvest/internal/format"
	"github.com/ppiankov/faqharvest/internal/model"
	"github.com/ppiankov/faqharvest/internal/partition"
	"github.com/ppiankov/faqharvest/internal/selector"
	"golang.org/x/net/html"
)

// Descriptor declares how one source is harvested
type Descriptor struct {
	// ID is the stable short name used on the command line
	ID string
	// Name is the display name written to every entity
	Name string
	// URLs are fetched in order; each page is partitioned independently
	URLs []string
	// PinnedFile, when set, is read from the pinned directory instead of fetching URLs[0]
	PinnedFile string

	// Select picks the flat node sequence fed to the partitioner
	Select selector.Predicate
	// IsMarker classifies question-bearing nodes
	IsMarker selector.Predicate
	// Start is the skip-prefix condition; nil starts at the first marker
	Start selector.Predicate

	// Question turns a marker run into question markup; defaults to its normalized text
	Question func(marker []*html.Node) string
	// Answer turns a content run into formatter input; defaults to the nodes themselves
	Answer func(content []*html.Node) format.Content
	// Style is the formatter branch used for every answer of this source
	Style format.Style
	// QuestionPattern gates construction; defaults to extract.QuestionPattern
	QuestionPattern *regexp.Regexp

	// Extract replaces partitioning entirely for sources that are not prose
	Extract func(doc *html.Node, pageURL string, run model.Run) ([]model.Entity, error)
}

// Harvest extracts the entities of one loaded page.
func (d *Descriptor) Harvest(doc *html.Node, pageURL string, run model.Run) ([]model.Entity, error) {
	if d.Extract != nil {
		return d.Extract(doc, pageURL, run)
	}
	if d.Select == nil || d.IsMarker == nil {
		return nil, fmt.Errorf("adapter %s: missing select or marker predicate", d.ID)
	}

	policy := partition.Policy[*html.Node]{IsMarker: d.IsMarker.Match}
	if d.Start != nil {
		policy.Start = d.Start.Match
	}

	nodes := selector.Query(doc, d.Select)
	return partition.Partition(nodes, policy, func(marker, content []*html.Node) (model.Entity, bool) {
		return d.Build(run, pageURL, marker, content)
	}), nil
}

// Build is the entity constructor shared by all prose adapters. It reports
// false when the extracted question fails the question pattern.
func (d *Descriptor) Build(run model.Run, pageURL string, marker, content []*html.Node) (model.Entity, bool) {
	question := d.question(marker)
	if !d.pattern().MatchString(question) {
		return model.Entity{}, false
	}

	answer := format.Render(d.Style, pageURL, d.answer(content))
	return model.NewEntity(question, answer, d.Name, pageURL, run), true
}

func (d *Descriptor) question(marker []*html.Node) string {
	if d.Question != nil {
		return d.Question(marker)
	}
	return extract.JoinText(marker)
}

func (d *Descriptor) answer(content []*html.Node) format.Content {
	if d.Answer != nil {
		return d.Answer(content)
	}
	return format.Content{Nodes: content}
}

func (d *Descriptor) pattern() *regexp.Regexp {
	if d.QuestionPattern != nil {
		return d.QuestionPattern
	}
	return extract.QuestionPattern
}

// Registry holds the source descriptors in harvest order
type Registry struct {
	descriptors []*Descriptor
}

// NewRegistry creates a registry with every built-in source.
// Registration order is output order.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(newMZCR())
	r.Register(newVlada())
	r.Register(newMVCR())
	r.Register(newMSMT())
	r.Register(newMPSV())
	r.Register(newMPO())
	r.Register(newSZU())
	r.Register(newCSSZ())
	r.Register(newMZV())
	r.Register(newMD())
	r.Register(newCNB())
	r.Register(newOckovani())
	r.Register(newCovidPortal())
	return r
}

// Register appends a descriptor
func (r *Registry) Register(d *Descriptor) {
	r.descriptors = append(r.descriptors, d)
}

// All returns the descriptors in registration order
func (r *Registry) All() []*Descriptor {
	return r.descriptors
}

// Lookup finds a descriptor by ID
func (r *Registry) Lookup(id string) (*Descriptor, bool) {
	for _, d := range r.descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// Filter returns a registry restricted to ids, keeping registration order.
// An empty list returns r unchanged.
func (r *Registry) Filter(ids []string) (*Registry, error) {
	if len(ids) == 0 {
		return r, nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.Lookup(id); !ok {
			return nil, fmt.Errorf("unknown source %q", id)
		}
		wanted[id] = true
	}

	out := &Registry{}
	for _, d := range r.descriptors {
		if wanted[d.ID] {
			out.Register(d)
		}
	}
	return out, nil
}
