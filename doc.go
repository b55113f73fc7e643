// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstream implements a streaming, character-at-a-time tokenizer for
// JSON and JSON5.
//
// # Tokenizing
//
// The Tokenizer type is a finite state machine that consumes one character
// at a time and reports a Token for each. A Token classifies its character by
// grammatical location (Loc), by the construct it belongs to (Type), and by
// its role within that construct (Sub). Call Feed with each input character,
// and End when the input is exhausted:
//
//	tz := jstream.NewTokenizer(jstream.JSON5)
//	for _, ch := range input {
//	   tok, err := tz.Feed(ch)
//	   if err != nil {
//	      log.Fatalf("Tokenizing failed: %v", err)
//	   }
//	   log.Printf("%q: %v %v %v", ch, tok.Loc, tok.Type, tok.Sub)
//	}
//	if _, err := tz.End(); err != nil {
//	   log.Fatalf("Incomplete input: %v", err)
//	}
//
// The FeedString and FeedReader methods feed a whole chunk of input and pass
// each token to a callback. Input may be split into chunks at any character
// boundary; the tokens reported do not depend on how the input is divided.
//
// # Grammar
//
// The zero Config accepts exactly the standard JSON grammar (RFC 8259). Each
// field of a Config enables one extension, such as comments, trailing
// commas, or hexadecimal numbers. The Comments and JSON5 presets enable
// common combinations.
//
// # Errors
//
// A syntax error is reported as a *SyntaxError, which records the position
// of the offending character and a Reason describing the problem. Reason
// values are errors, so the category of an error can be checked with
// errors.Is. Errors are fatal: once a Tokenizer reports an error, it reports
// the same error for every subsequent character.
//
// # Values
//
// The tokenizer does not build values. Package ast materializes a complete
// value from the token stream, and package event delivers the values of a
// document to a tree of receivers, retaining only what the caller asks for.
package jstream
