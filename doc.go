// Package semagraph provides a shared, mutable in-memory property graph
// with embedding-based semantic search and real-time broadcast of every
// mutation to streaming subscribers.
//
// # Basic Usage
//
// Create a Graph by wiring the store, hub, and search orchestrator:
//
//	cache, _ := embedding.NewCache(embedding.NewOllamaClient("", "nomic-embed-text"), 1000)
//	g := semagraph.New(
//		store.New(),
//		hub.New(log, 64),
//		search.NewOrchestrator(cache, log),
//		200, // match threshold
//		log,
//	)
//
// # Mutations and Broadcasts
//
// Every successful mutation publishes exactly one graph_update event
// carrying the post-mutation snapshot to every subscriber:
//
//	sub := g.Subscribe()
//	defer sub.Close()
//
//	if err := g.CreateNode(types.Node{ID: "1", Label: "Node 1"}); err != nil {
//		log.Error("create failed", "error", err)
//	}
//	ev := <-sub.Events() // graph_update with the new snapshot
//
// Queries never mutate and never broadcast:
//
//	id, score, err := g.Search(ctx, "which node is about payments?")
package semagraph
