package nulldb

// Executor executes a query plan
type Executor interface {
	Execute() Result
}
