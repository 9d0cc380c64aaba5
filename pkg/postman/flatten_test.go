package postman

import (
	"reflect"
	"testing"
)

func request(method, url string) *Request {
	return &Request{Method: method, URL: url}
}

func TestFlatten_Order(t *testing.T) {
	col := &Collection{
		Name: "Ordered",
		Items: []Item{
			{Name: "First", Request: request("GET", "https://x/1")},
			{Name: "Users", Items: []Item{
				{Name: "List", Request: request("GET", "https://x/users")},
				{Name: "Admin", Items: []Item{
					{Name: "Promote", Request: request("POST", "https://x/admin")},
				}},
				{Name: "Delete", Request: request("DELETE", "https://x/users/1")},
			}},
			{Name: "Last", Request: request("GET", "https://x/2")},
		},
	}

	got := Flatten(col)

	wantNames := []string{"First", "List", "Promote", "Delete", "Last"}
	if len(got) != len(wantNames) {
		t.Fatalf("len = %d, want %d", len(got), len(wantNames))
	}
	for i, want := range wantNames {
		if got[i].Name != want {
			t.Errorf("got[%d].Name = %q, want %q", i, got[i].Name, want)
		}
	}

	wantFolders := [][]string{nil, {"Users"}, {"Users", "Admin"}, {"Users"}, nil}
	for i, want := range wantFolders {
		if len(got[i].Folders) == 0 && len(want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got[i].Folders, want) {
			t.Errorf("got[%d].Folders = %v, want %v", i, got[i].Folders, want)
		}
	}
}

func TestFlatten_Empty(t *testing.T) {
	if got := Flatten(&Collection{Name: "Empty"}); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestFlatten_DeepNesting(t *testing.T) {
	// Build a 2000-level-deep folder chain; the explicit stack must not
	// overflow.
	leaf := Item{Name: "Leaf", Request: request("GET", "https://x/leaf")}
	node := leaf
	for i := 0; i < 2000; i++ {
		node = Item{Name: "F", Items: []Item{node}}
	}

	got := Flatten(&Collection{Name: "Deep", Items: []Item{node}})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if len(got[0].Folders) != 2000 {
		t.Errorf("folder depth = %d, want 2000", len(got[0].Folders))
	}
}
