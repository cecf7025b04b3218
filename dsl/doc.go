// Package dsl registers per-type codecs: the explicit, declaration-time
// counterpart of the compile-time schema/codec derivation in systems that
// generate this code. Builders produce immutable genval.Codec values that
// carry both the declarative Schema and the typed encode/decode pair.
//
//	codec := dsl.ObjectOf[Book]("Book").
//	    Field("title", dsl.Of(dsl.String())).
//	    Field("year", dsl.Of(dsl.Nullable(dsl.Int()))).Optional().
//	    MustBind()
package dsl
