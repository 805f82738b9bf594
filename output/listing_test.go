package output

import "testing"

func TestListing(t *testing.T) {
	got := string(Listing("example.com/shapes", []Entry{
		{Name: "b", Descriptor: "I"},
		{Name: "a.List", Descriptor: "Ljava/util/List;", Signature: "Ljava/util/List<TT;>;"},
		{Name: "c", Descriptor: "Ljava/lang/String;", Signature: "Ljava/lang/String;"},
	}))

	want := "# example.com/shapes\n" +
		"a.List  Ljava/util/List;    Ljava/util/List<TT;>;\n" +
		"b       I                   -\n" +
		"c       Ljava/lang/String;  -\n"
	if got != want {
		t.Errorf("Listing() =\n%s\nwant\n%s", got, want)
	}
}

func TestListing_Empty(t *testing.T) {
	if got := string(Listing("graph.yaml", nil)); got != "# graph.yaml\n" {
		t.Errorf("Listing(nil) = %q", got)
	}
}
