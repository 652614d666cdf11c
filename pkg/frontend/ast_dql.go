package frontend

var (
	_ Statement = (*SelectStatement)(nil)
)

type SelectStatement struct {
	Selections []*SelectionItem
	From       *Table
	Where      Expression // must evaluate to a boolean
}

func (ss *SelectStatement) statement() {}
