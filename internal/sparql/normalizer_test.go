package sparql

import "testing"

func TestNormalizeSimpleSelect(t *testing.T) {
	q, err := Normalize("SELECT ?s WHERE { ?s ?p ?o } LIMIT 1", "")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if q.AST.Form != FormSelect {
		t.Fatalf("expected SELECT, got %s", q.AST.Form)
	}
	if q.AST.Limit == nil || *q.AST.Limit != 1 {
		t.Fatalf("expected limit=1, got %v", q.AST.Limit)
	}
}

func TestCanonicalizeIsAFixedPoint(t *testing.T) {
	raw := "PREFIX foaf: <http://xmlns.com/foaf/0.1/>\nSELECT   ?s\n WHERE{ ?s foaf:name ?o }   ORDER   BY ?s LIMIT 10"
	q1, err := Normalize(raw, "application/sparql-results+json")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	q2, err := Normalize(q1.Canonical, "application/sparql-results+json")
	if err != nil {
		t.Fatalf("normalize canonical: %v", err)
	}

	if q1.Canonical != q2.Canonical {
		t.Fatalf("not a fixed point:\n  first:  %q\n  second: %q", q1.Canonical, q2.Canonical)
	}
}

func TestFingerprintStableAcrossWhitespaceAndCommentDifferences(t *testing.T) {
	a := "SELECT ?s WHERE { ?s ?p ?o }"
	b := "SELECT   ?s   WHERE   {   ?s ?p ?o   }  # trailing comment"

	qa, err := Normalize(a, "")
	if err != nil {
		t.Fatalf("normalize a: %v", err)
	}
	qb, err := Normalize(b, "")
	if err != nil {
		t.Fatalf("normalize b: %v", err)
	}

	if qa.Fingerprint != qb.Fingerprint {
		t.Fatalf("expected equal fingerprints, got %s vs %s", qa.Fingerprint, qb.Fingerprint)
	}
}

func TestFingerprintVariesByAccept(t *testing.T) {
	raw := "SELECT ?s WHERE { ?s ?p ?o }"
	qJSON, err := Normalize(raw, "application/sparql-results+json")
	if err != nil {
		t.Fatalf("normalize json: %v", err)
	}
	qXML, err := Normalize(raw, "application/sparql-results+xml")
	if err != nil {
		t.Fatalf("normalize xml: %v", err)
	}
	if qJSON.Fingerprint == qXML.Fingerprint {
		t.Fatalf("expected different fingerprints for different accept headers")
	}
}

func TestParseErrorOnUnrecognizedForm(t *testing.T) {
	_, err := Normalize("SELEKT ?x", "")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var pe *ParseError
	if !asParseError(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestQueryTypeNotAllowedOnUpdate(t *testing.T) {
	_, err := Normalize("INSERT DATA { <a> <b> <c> }", "")
	if err == nil {
		t.Fatalf("expected type-not-allowed error")
	}
	var te *QueryTypeNotAllowedError
	if !asQueryTypeError(err, &te) {
		t.Fatalf("expected *QueryTypeNotAllowedError, got %T: %v", err, err)
	}
}

func TestAskIsNotSplitCandidateButStillNormalizes(t *testing.T) {
	q, err := Normalize("ASK { ?s ?p ?o }", "")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if q.AST.Form != FormAsk {
		t.Fatalf("expected ASK, got %s", q.AST.Form)
	}
}

func TestPreambleIsPreservedVerbatim(t *testing.T) {
	raw := "PREFIX ex: <http://example.org/>\nSELECT ?s WHERE { ?s a ex:Thing }"
	q, err := Normalize(raw, "")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if q.Preamble != "PREFIX ex: <http://example.org/>" {
		t.Fatalf("unexpected preamble: %q", q.Preamble)
	}
}

func asParseError(err error, target **ParseError) bool {
	if e, ok := err.(*ParseError); ok {
		*target = e
		return true
	}
	return false
}

func asQueryTypeError(err error, target **QueryTypeNotAllowedError) bool {
	if e, ok := err.(*QueryTypeNotAllowedError); ok {
		*target = e
		return true
	}
	return false
}
