package marshal

import (
	"errors"
	"testing"
)

type testSource struct {
	Name  string
	Count int
}

type testTarget struct {
	Name  string
	Count int
}

func TestBuildAppliesInOrder(t *testing.T) {
	src := testSource{Name: "n", Count: 3}

	out, err := Build(func() *testTarget { return &testTarget{} }, src,
		func(s testSource, dst *testTarget) error {
			dst.Name = s.Name
			return nil
		},
		func(s testSource, dst *testTarget) error {
			// later appliers observe earlier writes
			if dst.Name != "n" {
				t.Fatalf("expected earlier write visible, got %q", dst.Name)
			}
			dst.Count = s.Count
			return nil
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "n" || out.Count != 3 {
		t.Fatalf("unexpected target: %+v", out)
	}
}

func TestBuildStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	ran := false

	_, err := Build(func() *testTarget { return &testTarget{} }, testSource{},
		func(testSource, *testTarget) error { return boom },
		func(testSource, *testTarget) error {
			ran = true
			return nil
		},
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if ran {
		t.Fatalf("applier after failure should not run")
	}
}

func TestCombineStartsFromExisting(t *testing.T) {
	existing := testTarget{Name: "old", Count: 7}

	out, err := Combine(existing, testSource{Name: "new"},
		func(s testSource, dst *testTarget) error {
			dst.Name = s.Name
			return nil
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "new" {
		t.Fatalf("expected applied field, got %q", out.Name)
	}
	if out.Count != 7 {
		t.Fatalf("expected untouched field preserved, got %d", out.Count)
	}
}

func TestCombineErasesWithAbsentSource(t *testing.T) {
	existing := testTarget{Name: "keep-me"}

	// an applier that always writes erases prior values when the source
	// field is absent
	out, err := Combine(existing, testSource{},
		func(s testSource, dst *testTarget) error {
			dst.Name = s.Name
			return nil
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "" {
		t.Fatalf("expected prior value erased, got %q", out.Name)
	}
}

func TestCombineReturnsExistingOnError(t *testing.T) {
	existing := testTarget{Name: "old"}
	boom := errors.New("boom")

	out, err := Combine(existing, testSource{Name: "new"},
		func(s testSource, dst *testTarget) error {
			dst.Name = s.Name
			return nil
		},
		func(testSource, *testTarget) error { return boom },
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if out.Name != "old" {
		t.Fatalf("expected no partial mutation, got %q", out.Name)
	}
}

func TestApplyWhen(t *testing.T) {
	embedded := func(v bool) bool { return v }

	cases := []struct {
		name  string
		force bool
		value bool
		want  bool
	}{
		{name: "forced includes regardless of marker", force: true, value: false, want: true},
		{name: "deferred follows marker true", force: false, value: true, want: true},
		{name: "deferred follows marker false", force: false, value: false, want: false},
		{name: "forced with marker true", force: true, value: true, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var dst testTarget
			ApplyWhen(tc.force, embedded, &dst, tc.value, func(d *testTarget, _ bool) {
				d.Name = "written"
			})
			if got := dst.Name == "written"; got != tc.want {
				t.Fatalf("expected written=%v, got %v", tc.want, got)
			}
		})
	}
}
