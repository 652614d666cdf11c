package nulldb

import (
	log "github.com/sirupsen/logrus"
)

// CreateTableExecutor is the executor for the create table query
type CreateTableExecutor struct {
	catalog *Catalog
	plan    *CreateTablePlanNode
}

var _ Executor = (*CreateTableExecutor)(nil)

// Execute executes the create table request
func (ex *CreateTableExecutor) Execute() Result {
	log.WithFields(log.Fields{"table": ex.plan.Schema.TableName}).Debug("nulldb::ddl_executor::CreateTableExecutor.Execute; start;")
	res := &CreateTableResult{}

	res.Err = ex.catalog.CreateTable(ex.plan.Schema)
	return res
}

// DropTableExecutor is the executor for the drop table query
type DropTableExecutor struct {
	catalog *Catalog
	plan    *DropTablePlanNode
}

var _ Executor = (*DropTableExecutor)(nil)

// Execute executes the drop table request
func (ex *DropTableExecutor) Execute() Result {
	log.WithFields(log.Fields{"table": ex.plan.TableName}).Debug("nulldb::ddl_executor::DropTableExecutor.Execute; start;")
	res := &DropTableResult{}

	res.Err = ex.catalog.DropTable(ex.plan.TableName)
	return res
}

// TruncateTableExecutor is the executor for the truncate table query
type TruncateTableExecutor struct {
	catalog *Catalog
	plan    *TruncateTablePlanNode
}

var _ Executor = (*TruncateTableExecutor)(nil)

// Execute executes the truncate table request
func (ex *TruncateTableExecutor) Execute() Result {
	log.WithFields(log.Fields{"table": ex.plan.TableName}).Debug("nulldb::ddl_executor::TruncateTableExecutor.Execute; start;")
	res := &TruncateTableResult{}

	res.Err = ex.catalog.TruncateTable(ex.plan.TableName)
	return res
}
