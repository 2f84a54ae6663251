package component

import "testing"

func TestKindsAreRegisteredOnce(t *testing.T) {
	kinds := Kinds()
	seen := map[string]ComponentID{}
	for i, k := range kinds {
		if k.ID() != ComponentID(i+1) {
			t.Fatalf("kind %s: expected id %d, got %d", k.Name(), i+1, k.ID())
		}
		if prev, ok := seen[k.Name()]; ok {
			t.Fatalf("name %s used by ids %d and %d", k.Name(), prev, k.ID())
		}
		seen[k.Name()] = k.ID()
	}
	for _, name := range []string{"body", "velocity", "health", "melee_ai", "ranged_ai", "dormant"} {
		if _, ok := seen[name]; !ok {
			t.Fatalf("expected kind %q to be registered", name)
		}
	}
	if BodyComponent.Kind().Name() != "body" || !BodyComponent.Kind().Valid() {
		t.Fatalf("unexpected body kind %+v", BodyComponent.Kind())
	}
	if (ComponentKind[Body]{}).Valid() {
		t.Fatalf("zero kind should be invalid")
	}
}
