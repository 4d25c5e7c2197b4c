// ABOUTME: Family network graph generation with graphviz
// ABOUTME: Renders customers and their family members, highlighting existing clients

package viz

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
)

type GraphGenerator struct {
	store *db.Store
}

func NewGraphGenerator(store *db.Store) *GraphGenerator {
	return &GraphGenerator{store: store}
}

// GenerateFamilyGraph renders the family network as DOT source. With a
// customerID it shows that customer's household; with an empty id it shows
// every customer that has family members recorded. Members who are already
// clients are filled green, open prospects stay white.
func (g *GraphGenerator) GenerateFamilyGraph(customerID string) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLayout("dot")
	graph.SetRankDir(cgraph.TBRank)

	customers, err := g.store.ListCustomers()
	if err != nil {
		return "", fmt.Errorf("failed to fetch customers: %w", err)
	}
	family, err := g.store.ListFamily()
	if err != nil {
		return "", fmt.Errorf("failed to fetch family members: %w", err)
	}

	byOwner := make(map[string][]models.FamilyMember)
	for _, m := range family {
		byOwner[m.ParentCustomerID] = append(byOwner[m.ParentCustomerID], m)
	}

	drawn := 0
	for _, c := range customers {
		if customerID != "" && c.ID != customerID {
			continue
		}
		members := byOwner[c.ID]
		if customerID == "" && len(members) == 0 {
			continue
		}

		root, err := graph.CreateNodeByName(c.LifeAssuredName)
		if err != nil {
			return "", fmt.Errorf("failed to create node: %w", err)
		}
		root.SetShape(cgraph.BoxShape)
		root.SetStyle(cgraph.FilledNodeStyle)
		root.SetFillColor("#4A90E2")
		drawn++

		for _, m := range members {
			node, err := graph.CreateNodeByName(m.Name)
			if err != nil {
				return "", fmt.Errorf("failed to create node: %w", err)
			}
			if m.IsExistingCustomer {
				node.SetStyle(cgraph.FilledNodeStyle)
				node.SetFillColor("#27AE60")
			}

			edge, err := graph.CreateEdgeByName("", root, node)
			if err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
			if m.Relationship != "" {
				edge.SetLabel(m.Relationship)
			}
		}
	}

	if customerID != "" && drawn == 0 {
		return "", fmt.Errorf("customer %s not found", customerID)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

// WritePNG renders the same graph straight to a PNG file.
func (g *GraphGenerator) WritePNG(customerID, path string) error {
	dot, err := g.GenerateFamilyGraph(customerID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("failed to parse graph: %w", err)
	}
	defer graph.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gv.Render(ctx, graph, graphviz.PNG, f); err != nil {
		return fmt.Errorf("failed to render PNG: %w", err)
	}
	return nil
}
