/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package datatree_test

import (
	"testing"
	"time"

	"github/sabouaram/dargo/datatree"
)

type fakeCatalogue []datatree.CatalogueEntry

func (f fakeCatalogue) Entries() []datatree.CatalogueEntry { return f }

func day(n int) time.Time {
	return time.Date(2024, time.January, n, 0, 0, 0, 0, time.UTC)
}

func TestAddArchiveAndRestorePicksLatest(t *testing.T) {
	dt := datatree.New()
	dt.AddArchive(fakeCatalogue{
		{Path: "a/b.txt", HasData: true, DataDate: day(1), HasEA: true, EADate: day(1)},
	}, 1)
	dt.AddArchive(fakeCatalogue{
		{Path: "a/b.txt", HasData: true, DataDate: day(5), HasEA: true, EADate: day(5)},
	}, 2)

	plan, err := dt.Restore([]string{"a/b.txt"}, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(plan.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", plan.Warnings)
	}
	if got := plan.ByArchive[2]; len(got) != 1 || got[0] != "a/b.txt" {
		t.Fatalf("expected a/b.txt from archive 2, got %v", plan.ByArchive)
	}
}

func TestRestoreWarnsOnSplitDataAndEA(t *testing.T) {
	dt := datatree.New()
	dt.AddArchive(fakeCatalogue{
		{Path: "a/b.txt", HasData: true, DataDate: day(1)},
	}, 1)
	dt.AddArchive(fakeCatalogue{
		{Path: "a/b.txt", HasEA: true, EADate: day(3)},
	}, 2)

	plan, err := dt.Restore([]string{"a/b.txt"}, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(plan.Warnings) != 1 {
		t.Fatalf("expected one split warning, got %v", plan.Warnings)
	}
	if len(plan.ByArchive[1]) != 1 || len(plan.ByArchive[2]) != 1 {
		t.Fatalf("expected path pulled from both archives, got %v", plan.ByArchive)
	}
}

func TestRestoreBeforeFilterSkipsNewerVersions(t *testing.T) {
	dt := datatree.New()
	dt.AddArchive(fakeCatalogue{
		{Path: "a/b.txt", HasData: true, DataDate: day(1)},
	}, 1)
	dt.AddArchive(fakeCatalogue{
		{Path: "a/b.txt", HasData: true, DataDate: day(10)},
	}, 2)

	cutoff := day(5)
	plan, err := dt.Restore([]string{"a/b.txt"}, &cutoff)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := plan.ByArchive[1]; len(got) != 1 {
		t.Fatalf("expected archive 1 to satisfy the before filter, got %v", plan.ByArchive)
	}
	if _, ok := plan.ByArchive[2]; ok {
		t.Fatalf("archive 2 postdates the filter and should not be used")
	}
}

func TestRestoreUnknownPath(t *testing.T) {
	dt := datatree.New()
	if _, err := dt.Restore([]string{"missing"}, nil); err == nil {
		t.Fatal("expected an error for an unknown path")
	}
}

func TestRemoveArchivePrunesEmptyLeaves(t *testing.T) {
	dt := datatree.New()
	dt.AddArchive(fakeCatalogue{
		{Path: "a/b.txt", HasData: true, DataDate: day(1)},
	}, 1)

	if err := dt.RemoveArchive(1, 1); err != nil {
		t.Fatalf("RemoveArchive: %v", err)
	}
	if _, err := dt.Restore([]string{"a/b.txt"}, nil); err == nil {
		t.Fatal("expected a/b.txt to have been pruned away")
	}
}

func TestSkipOutShiftsArchiveNumbers(t *testing.T) {
	dt := datatree.New()
	dt.AddArchive(fakeCatalogue{{Path: "f", HasData: true, DataDate: day(1)}}, 1)
	dt.AddArchive(fakeCatalogue{{Path: "f", HasData: true, DataDate: day(2)}}, 2)
	dt.AddArchive(fakeCatalogue{{Path: "f", HasData: true, DataDate: day(3)}}, 3)

	if err := dt.RemoveArchive(2, 2); err != nil {
		t.Fatalf("RemoveArchive: %v", err)
	}
	dt.SkipOut(2)

	plan, err := dt.Restore([]string{"f"}, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, ok := plan.ByArchive[2]; !ok {
		t.Fatalf("expected old archive 3 renumbered to 2, got %v", plan.ByArchive)
	}
}

func TestApplyPermutationRenumbers(t *testing.T) {
	dt := datatree.New()
	dt.AddArchive(fakeCatalogue{{Path: "f", HasData: true, DataDate: day(1)}}, 1)

	if err := dt.ApplyPermutation(1, 7); err != nil {
		t.Fatalf("ApplyPermutation: %v", err)
	}

	plan, err := dt.Restore([]string{"f"}, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, ok := plan.ByArchive[7]; !ok {
		t.Fatalf("expected archive 1 renumbered to 7, got %v", plan.ByArchive)
	}
}

func TestApplyPermutationRejectsNonLivePair(t *testing.T) {
	dt := datatree.New()
	dt.AddArchive(fakeCatalogue{{Path: "f", HasData: true, DataDate: day(1)}}, 1)

	if err := dt.ApplyPermutation(5, 9); err == nil {
		t.Fatal("expected an error permuting two archive numbers with no live entries")
	}
}

func TestCheckOrderDetectsInversion(t *testing.T) {
	dt := datatree.New()
	dt.AddArchive(fakeCatalogue{{Path: "f", HasData: true, DataDate: day(10)}}, 1)
	dt.AddArchive(fakeCatalogue{{Path: "f", HasData: true, DataDate: day(1)}}, 2)

	issue, ok := dt.CheckOrder()
	if ok {
		t.Fatal("expected CheckOrder to detect the date inversion between archive 1 and 2")
	}
	if issue.Path != "f" || issue.Kind != "data" {
		t.Fatalf("unexpected issue: %+v", issue)
	}
}

func TestCheckOrderAcceptsMonotoneHistory(t *testing.T) {
	dt := datatree.New()
	dt.AddArchive(fakeCatalogue{{Path: "f", HasData: true, DataDate: day(1)}}, 1)
	dt.AddArchive(fakeCatalogue{{Path: "f", HasData: true, DataDate: day(2)}}, 2)

	if _, ok := dt.CheckOrder(); !ok {
		t.Fatal("expected a monotone history to pass CheckOrder")
	}
}
