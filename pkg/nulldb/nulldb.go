package nulldb

import (
	"github.com/nulldb/nulldb/pkg/frontend"
	log "github.com/sirupsen/logrus"
)

// Client runs sql statements against an in-memory catalog.
type Client struct {
	name    string
	catalog *Catalog
}

// Execute executes a single sql statement obtained from the REPL.
func (c *Client) Execute(cmd string) (Result, error) {
	log.WithFields(log.Fields{"name": c.name, "cmd": cmd}).Debug("nulldb::nulldb::Execute; starting execution of command;")
	p := frontend.NewParser(c.name, cmd)
	stmt, err := p.Parse()
	if err != nil {
		return nil, err
	}

	return c.run(stmt)
}

// ExecuteScript executes a sequence of statements, stopping at the first
// error. Returns the results of the statements that ran.
func (c *Client) ExecuteScript(script string) ([]Result, error) {
	p := frontend.NewParser(c.name, script)
	stmts, err := p.ParseScript()
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, stmt := range stmts {
		res, err := c.run(stmt)
		if err != nil {
			return results, err
		}

		results = append(results, res)
		if res.HasError() {
			return results, res.GetError()
		}
	}

	return results, nil
}

func (c *Client) run(stmt frontend.Statement) (Result, error) {
	if err := newValidator(stmt).validate(); err != nil {
		return nil, err
	}

	// derive the query plan
	pn, err := newPlanner(stmt).plan().optimize().get()
	if err != nil {
		return nil, err
	}

	// execute the plan node
	ex := c.getExecutor(pn)
	return ex.Execute(), nil
}

func (c *Client) getExecutor(pn PlanNode) Executor {
	switch n := pn.(type) {
	case *CreateTablePlanNode:
		return &CreateTableExecutor{catalog: c.catalog, plan: n}

	case *DropTablePlanNode:
		return &DropTableExecutor{catalog: c.catalog, plan: n}

	case *TruncateTablePlanNode:
		return &TruncateTableExecutor{catalog: c.catalog, plan: n}

	case *InsertPlanNode:
		return &InsertExecutor{catalog: c.catalog, plan: n}

	case *SelectPlanNode:
		return &SelectExecutor{catalog: c.catalog, plan: n}

	case *UpdatePlanNode:
		return &UpdateExecutor{catalog: c.catalog, plan: n}

	case *DeletePlanNode:
		return &DeleteExecutor{catalog: c.catalog, plan: n}
	}

	panic("programming error: unexpected plan node in getExecutor")
}

// NewClient creates a new client for running sql queries.
func NewClient(name string) *Client {
	return &Client{
		name:    name,
		catalog: NewCatalog(),
	}
}
