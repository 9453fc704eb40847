package schema

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/sqldialect/internal/typename"
)

func TestTableBuilders(t *testing.T) {
	table := NewTable("Users",
		NotNull("Id", typename.Int32),
		Null("Name", typename.String).WithLength(100),
		NotNull("Balance", typename.Decimal).WithPrecision(12, 2),
	).WithPrimaryKey("Id").WithIndex("IX_Name", "Name")

	assert.Equal(t, []string{"Id", "Name", "Balance"}, table.ColumnNames())
	assert.Equal(t, []string{"Id"}, table.PrimaryKey)
	require.Len(t, table.Indexes, 1)
	assert.Equal(t, Index{Name: "IX_Name", Columns: []string{"Name"}}, table.Indexes[0])

	name, ok := table.Column("Name")
	require.True(t, ok)
	assert.True(t, name.Nullable)
	assert.Equal(t, 100, name.Length)

	balance, ok := table.Column("Balance")
	require.True(t, ok)
	assert.Equal(t, 12, balance.Precision)
	assert.Equal(t, 2, balance.Scale)

	_, ok = table.Column("Missing")
	assert.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	doc := `
tables:
  - name: Users
    schema: app
    columns:
      - name: Id
        type: int32
      - name: Name
        type: string
        length: 100
        nullable: true
      - name: Amount
        type: decimal
        precision: 10
        scale: 2
    primary_key: [Id]
    indexes:
      - name: IX_Name
        columns: [Name]
---
tables:
  - name: Audit
    columns:
      - name: At
        type: timestamp
`
	tables, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, tables, 2)

	users := tables[0]
	assert.Equal(t, "Users", users.Name)
	assert.Equal(t, "app", users.Schema)
	assert.Equal(t, []Column{
		{Name: "Id", Type: typename.Int32},
		{Name: "Name", Type: typename.String, Length: 100, Nullable: true},
		{Name: "Amount", Type: typename.Decimal, Precision: 10, Scale: 2},
	}, users.Columns)
	assert.Equal(t, []string{"Id"}, users.PrimaryKey)
	assert.Equal(t, []Index{{Name: "IX_Name", Columns: []string{"Name"}}}, users.Indexes)

	assert.Equal(t, typename.DateTime, tables[1].Columns[0].Type)
}

func TestLoadYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown type", doc: "tables:\n  - name: T\n    columns:\n      - name: c\n        type: varchar\n"},
		{name: "unknown field", doc: "tables:\n  - name: T\n    colums: []\n"},
		{name: "missing name", doc: "tables:\n  - columns:\n      - name: c\n        type: int32\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

type account struct {
	ID        int64          `db:"id"`
	Email     string         `db:"email,size=320,index=ix_account_email"`
	Nickname  sql.NullString `db:"nickname,size=50"`
	Balance   float64        `db:"balance,type=decimal,precision=12,scale=2"`
	Avatar    []byte
	CreatedAt time.Time
	DeletedAt *time.Time
	Secret    string `db:"-"`
	internal  int    //nolint:unused // must be skipped
}

func (account) TableName() string { return "accounts" }

type membership struct {
	TenantID [16]byte `db:"tenant_id,pk"`
	UserID   int32    `db:"user_id,pk,index"`
	Role     string   `db:"role,null"`
}

func TestFromStruct(t *testing.T) {
	table, err := FromStruct("", &account{})
	require.NoError(t, err)

	assert.Equal(t, "accounts", table.Name)
	assert.Equal(t, []Column{
		{Name: "id", Type: typename.Int64},
		{Name: "email", Type: typename.String, Length: 320},
		{Name: "nickname", Type: typename.String, Length: 50, Nullable: true},
		{Name: "balance", Type: typename.Decimal, Precision: 12, Scale: 2},
		{Name: "avatar", Type: typename.Binary, Nullable: true},
		{Name: "created_at", Type: typename.DateTime},
		{Name: "deleted_at", Type: typename.DateTime, Nullable: true},
	}, table.Columns)
	assert.Equal(t, []string{"id"}, table.PrimaryKey)
	assert.Equal(t, []Index{{Name: "ix_account_email", Columns: []string{"email"}}}, table.Indexes)
}

func TestFromStruct_CompositeKey(t *testing.T) {
	table, err := FromStruct("memberships", membership{})
	require.NoError(t, err)

	assert.Equal(t, "memberships", table.Name)
	assert.Equal(t, []string{"tenant_id", "user_id"}, table.PrimaryKey)
	assert.Equal(t, typename.Guid, table.Columns[0].Type)
	assert.True(t, table.Columns[2].Nullable)
	assert.Equal(t, []Index{{Name: "ix_memberships_user_id", Columns: []string{"user_id"}}}, table.Indexes)
}

func TestFromStruct_Errors(t *testing.T) {
	type badOption struct {
		A string `db:"a,colour=red"`
	}
	type unsupported struct {
		Ch chan int
	}
	type empty struct {
		hidden int //nolint:unused // unexported only
	}

	tests := []struct {
		name  string
		model interface{}
	}{
		{name: "nil", model: nil},
		{name: "not a struct", model: 42},
		{name: "bad tag option", model: badOption{}},
		{name: "unsupported field type", model: unsupported{}},
		{name: "no fields", model: empty{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromStruct("t", tt.model)
			assert.Error(t, err)
		})
	}
}

func TestFromStruct_SnakeCaseTableName(t *testing.T) {
	type OrderLine struct {
		Id  int
		Qty int16
	}
	table, err := FromStruct("", OrderLine{})
	require.NoError(t, err)
	assert.Equal(t, "order_line", table.Name)
	assert.Equal(t, []string{"id"}, table.PrimaryKey)
	assert.Equal(t, typename.Int16, table.Columns[1].Type)
}

func TestFromStruct_IntegerWidths(t *testing.T) {
	type counters struct {
		Delta   int8
		Flags   uint8
		Port    uint16
		Seq     uint32
		Total   uint64
		Cap     uint
		Ratio   *uint64
		Capped  uint64 `db:"capped,precision=25"`
		AsBytes uint64 `db:"as_bytes,type=int64"`
	}

	table, err := FromStruct("counters", counters{})
	require.NoError(t, err)
	assert.Equal(t, []Column{
		{Name: "delta", Type: typename.Int16},
		{Name: "flags", Type: typename.Byte},
		{Name: "port", Type: typename.Int32},
		{Name: "seq", Type: typename.Int64},
		{Name: "total", Type: typename.Decimal, Precision: 20},
		{Name: "cap", Type: typename.Decimal, Precision: 20},
		{Name: "ratio", Type: typename.Decimal, Precision: 20, Nullable: true},
		{Name: "capped", Type: typename.Decimal, Precision: 25},
		{Name: "as_bytes", Type: typename.Int64},
	}, table.Columns)
}
