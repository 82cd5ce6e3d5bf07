// Package resultgrid reads the answer grid of a result set: its columns and
// its rows of hashed values.
//
// A row's columns are aligned with the data set's columns by position. Column
// names are resolved to positions for convenience but are never the storage
// key, since two columns may share a display name.
package resultgrid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp-forge/tansdk/pkg/apimodels"
)

// DataSet is a decoded ResultSet or MergedResultSet item.
type DataSet struct {
	item    *apimodels.Item
	columns *Columns
	rows    []*Row
}

// NewDataSet decodes item. Every row must carry exactly one value column per
// column of the data set.
func NewDataSet(item *apimodels.Item) (*DataSet, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: nil result set", ErrGrid)
	}
	ds := &DataSet{item: item}
	ds.columns = &Columns{}

	if cols := item.List("columns"); cols != nil {
		for i, ci := range cols.ItemsOf() {
			c := &Column{ds: ds, idx: i}
			c.name, _ = ci.Str("name")
			c.typ, _ = ci.Int("type")
			c.hash, _ = ci.Int("hash")
			ds.columns.cols = append(ds.columns.cols, c)
		}
	}

	if rows := item.List("rows"); rows != nil {
		for n, ri := range rows.ItemsOf() {
			r, err := ds.newRow(ri)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", n, err)
			}
			ds.rows = append(ds.rows, r)
		}
	}
	return ds, nil
}

// DataSetsFromList decodes every result set of a ResultSetList.
func DataSetsFromList(list *apimodels.List) ([]*DataSet, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]*DataSet, 0, list.Len())
	for i, it := range list.ItemsOf() {
		ds, err := NewDataSet(it)
		if err != nil {
			return nil, fmt.Errorf("result set %d: %w", i, err)
		}
		out = append(out, ds)
	}
	return out, nil
}

func (ds *DataSet) newRow(ri *apimodels.Item) (*Row, error) {
	r := &Row{ds: ds}
	r.id, _ = ri.Int("id")
	r.cid, _ = ri.Int("cid")

	var cells []any
	if l := ri.List("columns"); l != nil {
		cells = l.Items()
	}
	if len(cells) != ds.columns.Len() {
		return nil, fmt.Errorf("%w: row %d has %d columns, data set has %d",
			ErrGrid, r.id, len(cells), ds.columns.Len())
	}

	for i, cell := range cells {
		rc := &RowColumn{row: r, idx: i}
		if l, ok := cell.(*apimodels.List); ok {
			for _, vi := range l.ItemsOf() {
				rc.values = append(rc.values, newRowValue(vi))
			}
		}
		r.cols = append(r.cols, rc)
	}
	return r, nil
}

// Item returns the decoded item.
func (ds *DataSet) Item() *apimodels.Item { return ds.item }

// ID returns the id of the result set, the id of the question asked.
func (ds *DataSet) ID() int64 {
	id, _ := ds.item.Int("id")
	return id
}

// Columns returns the columns.
func (ds *DataSet) Columns() *Columns { return ds.columns }

// Rows returns the rows in wire order.
func (ds *DataSet) Rows() []*Row { return ds.rows }

// Row returns the row at i, or nil.
func (ds *DataSet) Row(i int) *Row {
	if i < 0 || i >= len(ds.rows) {
		return nil
	}
	return ds.rows[i]
}

// Len returns the number of rows.
func (ds *DataSet) Len() int { return len(ds.rows) }

func (ds *DataSet) String() string {
	return fmt.Sprintf("DataSet(id=%d, columns=%d, rows=%d)", ds.ID(), ds.columns.Len(), len(ds.rows))
}

// Columns is the ordered column list of a data set.
type Columns struct {
	cols []*Column
}

// Len returns the number of columns.
func (cs *Columns) Len() int { return len(cs.cols) }

// All returns the columns in order.
func (cs *Columns) All() []*Column { return cs.cols }

// Names returns the display names in order.
func (cs *Columns) Names() []string {
	out := make([]string, len(cs.cols))
	for i, c := range cs.cols {
		out[i] = c.name
	}
	return out
}

// At returns the column at position i.
func (cs *Columns) At(i int) (*Column, error) {
	if i < 0 || i >= len(cs.cols) {
		return nil, &IndexError{Index: i, Len: len(cs.cols)}
	}
	return cs.cols[i], nil
}

// Index returns the position of the first column named name.
func (cs *Columns) Index(name string) (int, error) {
	for i, c := range cs.cols {
		if c.name == name {
			return i, nil
		}
	}
	return -1, &UnknownNameError{Name: name, Valid: cs.Names()}
}

// ByName returns the first column named name.
func (cs *Columns) ByName(name string) (*Column, error) {
	i, err := cs.Index(name)
	if err != nil {
		return nil, err
	}
	return cs.cols[i], nil
}

func (cs *Columns) String() string {
	return fmt.Sprintf("ColumnList(names=%q)", cs.Names())
}

// Column is one column of a data set.
type Column struct {
	ds   *DataSet
	idx  int
	name string
	typ  int64
	hash int64
}

// Name returns the display name.
func (c *Column) Name() string { return c.name }

// Type returns the result type code.
func (c *Column) Type() int64 { return c.typ }

// ResultType returns the label of the result type code.
func (c *Column) ResultType() string { return ResultTypeLabel(c.typ) }

// Hash returns the hash of the sensor owning the column, 0 for computed
// columns such as "Count".
func (c *Column) Hash() int64 { return c.hash }

// Index returns the column position.
func (c *Column) Index() int { return c.idx }

// DataSet returns the data set the column belongs to.
func (c *Column) DataSet() *DataSet { return c.ds }

// GetValues returns, for every row, the texts of this column.
func (c *Column) GetValues() [][]string {
	out := make([][]string, 0, len(c.ds.rows))
	for _, r := range c.ds.rows {
		out = append(out, r.cols[c.idx].Texts())
	}
	return out
}

// GetJoinedValues is like GetValues with each row's texts joined by sep.
func (c *Column) GetJoinedValues(sep string) []string {
	out := make([]string, 0, len(c.ds.rows))
	for _, r := range c.ds.rows {
		out = append(out, strings.Join(r.cols[c.idx].Texts(), sep))
	}
	return out
}

func (c *Column) String() string {
	return fmt.Sprintf("Column(name=%q, type=%d, result_type=%s, hash=%d, index=%d)",
		c.name, c.typ, c.ResultType(), c.hash, c.idx)
}

// Row is one row of a data set.
type Row struct {
	ds   *DataSet
	id   int64
	cid  int64
	cols []*RowColumn
}

// ID returns the row id.
func (r *Row) ID() int64 { return r.id }

// CID returns the client correlation id.
func (r *Row) CID() int64 { return r.cid }

// Len returns the number of value columns, always the data set column count.
func (r *Row) Len() int { return len(r.cols) }

// Names returns the data set column names.
func (r *Row) Names() []string { return r.ds.columns.Names() }

// Columns returns the value columns in order.
func (r *Row) Columns() []*RowColumn { return r.cols }

// At returns the value column at position i.
func (r *Row) At(i int) (*RowColumn, error) {
	if i < 0 || i >= len(r.cols) {
		return nil, &IndexError{Index: i, Len: len(r.cols)}
	}
	return r.cols[i], nil
}

// ByName returns the value column under the column named name.
func (r *Row) ByName(name string) (*RowColumn, error) {
	i, err := r.ds.columns.Index(name)
	if err != nil {
		return nil, err
	}
	return r.cols[i], nil
}

// ValueOptions control Row.GetValues.
type ValueOptions struct {
	// Meta adds "<name> Sensor Hash" and "<name> Result Type" keys.
	Meta bool

	// Hashes adds "<name> Hash Values" keys.
	Hashes bool

	// Join returns joined strings, separated by Joiner, instead of slices.
	Join   bool
	Joiner string
}

func (o ValueOptions) render(vals []string) any {
	if o.Join {
		return strings.Join(vals, o.Joiner)
	}
	return vals
}

// GetValues maps column names to this row's texts. Values are []string, or
// string when opts.Join is set. Sensor hashes are int64 and result types are
// strings.
func (r *Row) GetValues(opts ValueOptions) map[string]any {
	out := make(map[string]any, len(r.cols))
	for i, rc := range r.cols {
		col := r.ds.columns.cols[i]
		out[col.name] = opts.render(rc.Texts())
		if opts.Hashes {
			out[col.name+" Hash Values"] = opts.render(rc.HashTexts())
		}
		if opts.Meta {
			out[col.name+" Sensor Hash"] = col.hash
			out[col.name+" Result Type"] = col.ResultType()
		}
	}
	return out
}

func (r *Row) String() string {
	return fmt.Sprintf("Row(id=%d, cid=%d, columns=%d)", r.id, r.cid, len(r.cols))
}

// RowColumn holds the values of one row under one column.
type RowColumn struct {
	row    *Row
	idx    int
	values []*RowValue
}

// Index returns the column position.
func (rc *RowColumn) Index() int { return rc.idx }

// Column returns the data set column at the same position.
func (rc *RowColumn) Column() *Column { return rc.row.ds.columns.cols[rc.idx] }

// Values returns the values; multi-value columns have more than one.
func (rc *RowColumn) Values() []*RowValue { return rc.values }

// Len returns the number of values.
func (rc *RowColumn) Len() int { return len(rc.values) }

// Texts returns the text of every value.
func (rc *RowColumn) Texts() []string {
	out := make([]string, len(rc.values))
	for i, v := range rc.values {
		out[i] = v.Value
	}
	return out
}

// HashTexts returns the decimal hash of every value that has one.
func (rc *RowColumn) HashTexts() []string {
	out := make([]string, 0, len(rc.values))
	for _, v := range rc.values {
		if v.Hash != nil {
			out = append(out, strconv.FormatInt(*v.Hash, 10))
		}
	}
	return out
}

func (rc *RowColumn) String() string {
	return fmt.Sprintf("RowColumn(name=%q, values=%q)", rc.Column().name, rc.Texts())
}

// RowValue is a single answer.
type RowValue struct {
	// Hash is nil for values without a hash, such as counts.
	Hash  *int64
	Value string
}

func newRowValue(it *apimodels.Item) *RowValue {
	rv := &RowValue{}
	if h, ok := it.Int("hash"); ok {
		rv.Hash = &h
	}
	rv.Value, _ = it.Str("value")
	return rv
}

func (v *RowValue) String() string {
	if v.Hash == nil {
		return fmt.Sprintf("RowValue(value=%q)", v.Value)
	}
	return fmt.Sprintf("RowValue(hash=%d, value=%q)", *v.Hash, v.Value)
}
