// Package storecatalog is an embeddable Go client for the store catalog:
// product lookup and free-text search over a Typesense or Redis backend,
// returning fully resolved products (model, category tree, manufacturer).
//
//	client, err := storecatalog.New(ctx,
//	    storecatalog.WithTypesense("localhost", 8108, os.Getenv("TYPESENSE_API_KEY")),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	p, err := client.Products().Get(ctx, "SKU-1")
//	if errors.Is(err, storecatalog.ErrProductNotFound) {
//	    // ...
//	}
//	list, _ := client.Products().List(ctx, storecatalog.ListQuery{Text: "wrench", PerPage: 20})
package storecatalog
