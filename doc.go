// Package genval is the structured-generation core: it constrains language
// model output to a declared shape and decodes it into statically typed Go
// values.
//
//   - Schema/Constraint model the declared shape (closed tagged variants)
//   - Content is the generic interchange value tree (Parse/Serialize)
//   - Codec[T] maps typed values to and from Content (dsl builders register
//     per-type codecs)
//   - Reconstruction[T] decodes best-effort typed snapshots from an in-flight
//     generation stream
//   - Project translates a Schema into a backend's native grammar document
//
// Design policy:
//   - Keep only public APIs in the root package; token-level plumbing lives
//     under internal/.
//   - Place the registration DSL under dsl/, grammar documents under
//     grammar/, the declarative importer under schemadef/, and the CLI under
//     cmd/genval.
//   - Failures are reported as Issues (JSON Pointer, code, message); the
//     library does not log and does not retry.
//
// Typical usage:
//
//	codec := dsl.ObjectOf[Book]("Book").
//	    Field("title", dsl.Of(dsl.String())).
//	    Field("year", dsl.Of(dsl.Nullable(dsl.Int()))).Optional().
//	    MustBind()
//
//	doc, err := genval.Project(codec.Schema(), genval.ProjectOpt{Backend: genval.BackendOpenAI})
//	v, err := codec.Decode(content)
package genval
