package record

import (
	"context"

	"condoadmin/internal/app/admin"
	"condoadmin/internal/domain/collection"
)

// resolve returns the running app and the definition of the named collection.
func resolve(ctx context.Context, name string) (*admin.App, collection.Definition, error) {
	app, err := admin.FromContext(ctx)
	if err != nil {
		return nil, collection.Definition{}, err
	}
	def, err := app.Records.Definition(name)
	if err != nil {
		return nil, collection.Definition{}, err
	}
	return app, def, nil
}
