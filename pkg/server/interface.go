/*
Package server implements msgpack IPC for word similarity queries.

Clients write msgpack maps to stdin and read one msgpack map per request from stdout.
Requests are processed synchronously in arrival order, with timing info included in responses.

# IPC

Every request carries an ID, echoed back, and an op:

	{"id": "q1", "op": "total", "w": "dog"}
	{"id": "q2", "op": "similar", "w": "cat"}
	{"id": "q3", "op": "pair", "w": "cat", "o": "dog"}
	{"id": "q4", "op": "words", "w": "ca", "l": 10}
	{"id": "q5", "op": "info"}
	{"id": "q6", "op": "config", "k": 6}
	{"id": "q7", "op": "reload", "w": "ngrams.txt"}
	{"id": "q8", "op": "health"}

A similarity response lists the query word first, then the most similar words with their scores:

	{"id": "q2", "s": ["cat", "dog", "fish"], "m": [{"w": "dog", "sc": 1, "r": 1}, {"w": "fish", "sc": 0.316, "r": 2}], "c": 2, "t": 41}

Unknown words are not errors: "total" answers 0 and "similar" answers just the word.
Errors are reserved for malformed requests and failed reloads:

	{"id": "q9", "e": "missing 'w' parameter", "c": 400}
*/
package server

// Request is a single IPC request
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Word  string `msgpack:"w,omitempty"`
	Other string `msgpack:"o,omitempty"` // second word for "pair"
	Limit int    `msgpack:"l,omitempty"`
	TopK  *int   `msgpack:"k,omitempty"` // for "config"
}

// TotalResponse answers "total"
type TotalResponse struct {
	ID        string `msgpack:"id"`
	Word      string `msgpack:"w"`
	Total     int    `msgpack:"n"`
	TimeTaken int64  `msgpack:"t"`
}

// SimilarMatch - one ranked similar word
type SimilarMatch struct {
	Word  string  `msgpack:"w"`
	Score float64 `msgpack:"sc"`
	Rank  uint16  `msgpack:"r"`
}

// SimilarResponse answers "similar". Words always starts with the query word.
type SimilarResponse struct {
	ID        string         `msgpack:"id"`
	Words     []string       `msgpack:"s"`
	Matches   []SimilarMatch `msgpack:"m"`
	Count     int            `msgpack:"c"`
	TimeTaken int64          `msgpack:"t"`
}

// PairResponse answers "pair"
type PairResponse struct {
	ID        string  `msgpack:"id"`
	Score     float64 `msgpack:"sc"`
	TimeTaken int64   `msgpack:"t"`
}

// WordsResponse answers "words" with corpus words starting with a prefix
type WordsResponse struct {
	ID    string   `msgpack:"id"`
	Words []string `msgpack:"s"`
	Count int      `msgpack:"c"`
}

// InfoResponse answers "info"
type InfoResponse struct {
	ID        string         `msgpack:"id"`
	Status    string         `msgpack:"status"`
	File      string         `msgpack:"file,omitempty"`
	Words     int            `msgpack:"words"`
	Years     int            `msgpack:"years"`
	TopK      int            `msgpack:"top_k"`
	CacheInfo map[string]int `msgpack:"cache,omitempty"`
}

// StatusResponse answers "config", "reload" and "health"
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	TopK   int    `msgpack:"top_k,omitempty"`
	Words  int    `msgpack:"words,omitempty"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
