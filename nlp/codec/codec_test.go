package codec

import (
	"testing"

	nlp "seqlab/nlp/types"
	"seqlab/util/errs"
)

func TestAliasResolution(t *testing.T) {
	bio, err := Resolve("BIO")
	if err != nil {
		t.Fatal(err.Error())
	}
	if bio.ID() != BioCodecID {
		t.Errorf("Expected %s, got %s", BioCodecID, bio.ID())
	}
	bilou, err := Resolve("BILOU")
	if err != nil {
		t.Fatal(err.Error())
	}
	if bilou.ID() != BilouCodecID {
		t.Errorf("Expected %s, got %s", BilouCodecID, bilou.ID())
	}
	byID, err := Resolve(BilouCodecID)
	if err != nil || byID.ID() != BilouCodecID {
		t.Errorf("Expected identifiers to resolve directly, got %v %v", byID, err)
	}
	empty, err := Resolve("")
	if err != nil || empty.ID() != BioCodecID {
		t.Errorf("Expected empty name to select BIO, got %v %v", empty, err)
	}
}

func TestUnknownCodec(t *testing.T) {
	r := NewRegistry()
	if id := r.Identifier("custom-id"); id != "custom-id" {
		t.Errorf("Expected custom-id to pass through, got %s", id)
	}
	_, err := r.Resolve("custom-id")
	if !errs.IsConfiguration(err) {
		t.Fatalf("Expected configuration error, got %v", err)
	}
	r.Register("custom-id", func() SequenceCodec { return BilouCodec{} })
	c, err := r.Resolve("custom-id")
	if err != nil {
		t.Fatal(err.Error())
	}
	if c.ID() != BilouCodecID {
		t.Errorf("Expected registered constructor to be used, got %s", c.ID())
	}
	if len(r.Identifiers()) != 3 {
		t.Errorf("Expected 3 identifiers, got %v", r.Identifiers())
	}
}

var testNames = []nlp.Span{{Start: 1, End: 3, Type: "person"}, {Start: 4, End: 5, Type: "location"}}

func spansEqual(a, b []nlp.Span) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBioEncodeDecode(t *testing.T) {
	c := BioCodec{}
	outcomes := c.Encode(testNames, 6)
	expected := []string{"other", "person-start", "person-cont", "other", "location-start", "other"}
	for i := range expected {
		if outcomes[i] != expected[i] {
			t.Errorf("Expected %s at %d, got %s", expected[i], i, outcomes[i])
		}
	}
	if decoded := c.Decode(outcomes); !spansEqual(decoded, testNames) {
		t.Errorf("Expected %v, got %v", testNames, decoded)
	}
}

func TestBioDecodeAdjacent(t *testing.T) {
	spans := BioCodec{}.Decode([]string{"person-start", "person-start", "person-cont", "location-cont"})
	expected := []nlp.Span{{Start: 0, End: 1, Type: "person"}, {Start: 1, End: 3, Type: "person"}}
	if !spansEqual(spans, expected) {
		t.Errorf("Expected %v, got %v", expected, spans)
	}
}

func TestBioValidator(t *testing.T) {
	v := BioCodec{}.Validator()
	seq := []string{"a", "b", "c"}
	if v.ValidSequence(0, seq, nil, "person-cont") {
		t.Error("cont is invalid at the first position")
	}
	if v.ValidSequence(1, seq, []string{"other"}, "person-cont") {
		t.Error("cont is invalid after other")
	}
	if v.ValidSequence(1, seq, []string{"location-start"}, "person-cont") {
		t.Error("cont is invalid after a start of another type")
	}
	if !v.ValidSequence(1, seq, []string{"person-start"}, "person-cont") {
		t.Error("cont is valid after a start of the same type")
	}
}

func TestBilouEncodeDecode(t *testing.T) {
	c := BilouCodec{}
	names := []nlp.Span{{Start: 0, End: 3, Type: "person"}, {Start: 4, End: 5, Type: "location"}}
	outcomes := c.Encode(names, 5)
	expected := []string{"person-start", "person-cont", "person-last", "other", "location-unit"}
	for i := range expected {
		if outcomes[i] != expected[i] {
			t.Errorf("Expected %s at %d, got %s", expected[i], i, outcomes[i])
		}
	}
	if decoded := c.Decode(outcomes); !spansEqual(decoded, names) {
		t.Errorf("Expected %v, got %v", names, decoded)
	}
}

func TestBilouValidator(t *testing.T) {
	v := BilouCodec{}.Validator()
	seq := []string{"a", "b", "c"}
	if v.ValidSequence(2, seq, []string{"other", "other"}, "person-start") {
		t.Error("start is invalid on the last token")
	}
	if v.ValidSequence(1, seq, []string{"person-start"}, "other") {
		t.Error("other is invalid inside an open name")
	}
	if !v.ValidSequence(1, seq, []string{"person-start"}, "person-last") {
		t.Error("last closes an open name")
	}
	if v.ValidSequence(0, seq, nil, "person-last") {
		t.Error("last is invalid without a start")
	}
}

func TestOutcomesCompatible(t *testing.T) {
	if !(BioCodec{}).AreOutcomesCompatible([]string{"other", "person-start", "person-cont"}) {
		t.Error("Expected BIO outcomes to be compatible")
	}
	if (BioCodec{}).AreOutcomesCompatible([]string{"other", "person-cont"}) {
		t.Error("cont without start is not BIO compatible")
	}
	if (BilouCodec{}).AreOutcomesCompatible([]string{"other", "person-start", "person-cont"}) {
		t.Error("start without last is not BILOU compatible")
	}
	if !(BilouCodec{}).AreOutcomesCompatible([]string{"other", "person-unit"}) {
		t.Error("unit only outcomes are BILOU compatible")
	}
}
