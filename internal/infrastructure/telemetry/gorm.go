package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InstrumentGorm registers the otelgorm plugin so every query shows up
// as a span under the request trace. Query variables are always
// excluded from spans; statements may carry patient data.
func InstrumentGorm(db *gorm.DB, log *zap.Logger) error {
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}
	log.Info("Database tracing enabled")
	return nil
}
