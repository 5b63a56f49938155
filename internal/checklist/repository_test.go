package checklist

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/regutech/plataforma/internal/db"
)

// txContable cuenta las inserciones ejecutadas, falla en la que se le
// indique y registra si la transacción terminó en commit o rollback.
type txContable struct {
	pgx.Tx
	fallarEn   int
	ejecutadas int
	commit     bool
	rollback   bool
}

func (t *txContable) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.ejecutadas++
	if t.fallarEn > 0 && t.ejecutadas == t.fallarEn {
		return pgconn.CommandTag{}, errors.New("violación de restricción")
	}
	return pgconn.CommandTag{}, nil
}

func (t *txContable) Commit(ctx context.Context) error {
	t.commit = true
	return nil
}

func (t *txContable) Rollback(ctx context.Context) error {
	t.rollback = true
	return nil
}

type beginnerStub struct {
	tx pgx.Tx
}

func (b beginnerStub) BeginTx(ctx context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return b.tx, nil
}

var _ db.Beginner = beginnerStub{}

func loteDeTres() []RespuestaItem {
	return []RespuestaItem{
		{PreguntaID: uuid.New(), OpcionSeleccionada: "Cumple"},
		{PreguntaID: uuid.New(), OpcionSeleccionada: "No Cumple"},
		{PreguntaID: uuid.New(), OpcionSeleccionada: "N/A"},
	}
}

func TestGuardarRespuestasRevierteAnteFalloParcial(t *testing.T) {
	tx := &txContable{fallarEn: 2}
	pgRepo := &PgRepository{tx: beginnerStub{tx: tx}}

	err := pgRepo.GuardarRespuestas(context.Background(), uuid.New(), uuid.New(), loteDeTres())
	if err == nil {
		t.Fatal("esperaba error al fallar la segunda inserción")
	}
	if tx.commit {
		t.Error("la transacción no debía confirmarse")
	}
	if !tx.rollback {
		t.Error("la transacción debía revertirse")
	}
	if tx.ejecutadas != 2 {
		t.Errorf("inserciones ejecutadas = %d, esperaba detenerse en la 2", tx.ejecutadas)
	}
}

func TestGuardarRespuestasConfirmaElLoteCompleto(t *testing.T) {
	tx := &txContable{}
	pgRepo := &PgRepository{tx: beginnerStub{tx: tx}}

	if err := pgRepo.GuardarRespuestas(context.Background(), uuid.New(), uuid.New(), loteDeTres()); err != nil {
		t.Fatalf("err = %v", err)
	}
	if !tx.commit {
		t.Error("la transacción debía confirmarse")
	}
	if tx.ejecutadas != 3 {
		t.Errorf("inserciones ejecutadas = %d, esperaba 3", tx.ejecutadas)
	}
}
