// Package server provides the MCP protocol handler serving tools over stdio.
//
// It handles the session level methods (initialize, ping, logging/setLevel and
// cancellation) and delegates tools/list and tools/call to an Implementer created per
// session.
//
// The stdio transport handles one message at a time, so a cancellation notification sent
// over stdio is only read once the call it names has returned. Hosts that dispatch
// concurrently, such as Adapter, cancel the in-flight call context.
//
//	srv, _ := server.New(server.WithNewImplementer(newImplementer))
//	log.Fatal(srv.Stdio(ctx).ListenAndServe())
package server
