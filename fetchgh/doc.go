// Package fetchgh acquires a source corpus from the GitHub search API.
// It searches repositories for a query, paginates through the results,
// and maps each repository to a corpus item: full name becomes the id,
// the owner login the category, topics the tags, and the description
// (plus the readme, when enabled) the item text. The output file is the
// corpus JSON the generator consumes.
package fetchgh
