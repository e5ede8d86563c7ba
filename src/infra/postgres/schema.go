package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// ApplySchema cria as tabelas caso não existam. Usado pelo datagen e pela
// suíte de integração; não é um mecanismo de migração.
func ApplySchema(ctx context.Context, session Session) error {
	if _, err := session.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres.ApplySchema - %w", err)
	}
	return nil
}
