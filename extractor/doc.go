// Package extractor compiles JSDoc annotated JavaScript/TypeScript classes into contracts.
//
// Extraction is lexical: the source is tokenized (strings, template literals, regular
// expressions and plain comments are skipped), each /** doc */ comment is attached to the
// declaration that follows it, and a structural pass over brace scopes records which
// class owns each declaration together with its byte range.
//
// Exported classes are found through `export class X`, `export default class [X]`,
// `export { X as Y }` and the forwarding form `export default X`. Documented methods
// become contract methods; documented static fields become named groups whose members
// are the documented declarations nested inside the field's range.
//
// Annotations that do not name exactly one type are kept as "unknown" and reported as
// warnings. A documented method or static field whose owning class is not exported
// aborts compilation with a *CompilationError.
package extractor
