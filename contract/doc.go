// Package contract defines the interface contract compiled from annotated source and the
// store it is persisted in.
//
// A contract describes one exported class: its description, the documented methods that
// become remote procedures, and named groups of static metadata. Contracts are written
// once by the extractor and loaded, read-only, by the bridge:
//
//	contracts, _ := contract.NewStore(afs.New()).Load(ctx, "dist/docs.json")
//	entry := contracts.Default()
package contract
