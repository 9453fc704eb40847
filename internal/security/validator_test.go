package security

import (
	"errors"
	"testing"
)

func TestValidator_ValidateStatement(t *testing.T) {
	tests := []struct {
		name      string
		stmt      string
		strict    bool
		wantError bool
	}{
		// Rendered DDL (should pass)
		{
			name:      "create_table",
			stmt:      `CREATE TABLE "Users" ( "Id" INT NOT NULL, "Name" VARCHAR(100) , PRIMARY KEY("Id")) ;`,
			wantError: false,
		},
		{
			name:      "create_index_sqlserver",
			stmt:      `CREATE INDEX [IX_Name] ON [dbo].[Users] ([Name]);`,
			wantError: false,
		},
		{
			name:      "unnamed_index",
			stmt:      "CREATE INDEX ON `orders` (`customer_id`);",
			wantError: false,
		},
		{
			name:      "lowercase_and_whitespace",
			stmt:      "  create   table t (id int)",
			wantError: false,
		},
		{
			name:      "drop_table",
			stmt:      `DROP TABLE "Users";`,
			wantError: false,
		},

		// Statement kinds outside DDL
		{
			name:      "select",
			stmt:      "SELECT * FROM users",
			wantError: true,
		},
		{
			name:      "delete",
			stmt:      "DELETE FROM users",
			wantError: true,
		},
		{
			name:      "empty",
			stmt:      "   ",
			wantError: true,
		},

		// Injected content
		{
			name:      "stacked_statement",
			stmt:      `CREATE TABLE t (id INT); DROP TABLE users;`,
			wantError: true,
		},
		{
			name:      "line_comment",
			stmt:      "CREATE TABLE t (id INT) -- trailing",
			wantError: true,
		},
		{
			name:      "block_comment",
			stmt:      "CREATE TABLE t (/* x */ id INT)",
			wantError: true,
		},
		{
			name:      "xp_cmdshell",
			stmt:      "CREATE TABLE t (id INT DEFAULT xp_cmdshell('dir'))",
			wantError: true,
		},
		{
			name:      "pg_sleep",
			stmt:      "CREATE TABLE t AS SELECT pg_sleep(10)",
			wantError: true,
		},

		// Strict mode
		{
			name:      "drop_rejected_in_strict",
			stmt:      `DROP TABLE "Users";`,
			strict:    true,
			wantError: true,
		},
		{
			name:      "create_allowed_in_strict",
			stmt:      `CREATE TABLE "Users" ( "Id" INT NOT NULL ) ;`,
			strict:    true,
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(WithStrict(tt.strict))
			err := v.ValidateStatement(tt.stmt)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateStatement() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, ErrUnsafeStatement) {
				t.Errorf("ValidateStatement() error = %v, want ErrUnsafeStatement", err)
			}
		})
	}
}

func TestValidator_WithAllowed(t *testing.T) {
	v := NewValidator(WithAllowed("CREATE TABLE"))

	if err := v.ValidateStatement(`CREATE TABLE t (id INT)`); err != nil {
		t.Errorf("CREATE TABLE rejected: %v", err)
	}
	if err := v.ValidateStatement(`CREATE INDEX ix ON t (id);`); err == nil {
		t.Error("CREATE INDEX accepted, want rejection")
	}
}

func TestValidator_ValidateScript(t *testing.T) {
	v := NewValidator()

	script := `CREATE TABLE "Users" ( "Id" INT NOT NULL ) ;` + "\n" +
		`CREATE INDEX "IX_Id" ON "Users" ("Id");` + "\n"

	stmts, err := v.ValidateScript(script)
	if err != nil {
		t.Fatalf("ValidateScript() error = %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("ValidateScript() returned %d statements, want 2", len(stmts))
	}
	if stmts[1] != `CREATE INDEX "IX_Id" ON "Users" ("Id");` {
		t.Errorf("second statement = %q", stmts[1])
	}

	_, err = v.ValidateScript(script + "SELECT 1;")
	if !errors.Is(err, ErrUnsafeStatement) {
		t.Errorf("ValidateScript() error = %v, want ErrUnsafeStatement", err)
	}
}
