// Package simulate replays dataset queries against the dataset's own
// answer strings to sanity-check tier separation: a query should surface
// its ground truth (or at worst a high-relevance string) long before it
// surfaces a low-relevance one. Matching is term overlap over the same
// tokenization the generator uses.
//
// The simulator is also exposed as a JSON-RPC 2.0 tool server
// (initialize, tools/list, tools/call) over stdio or HTTP, with
// corpus_search and corpus_stats tools.
package simulate
