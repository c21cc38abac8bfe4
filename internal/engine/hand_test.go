package engine

import "testing"

func TestHandFromCardsSoftAce(t *testing.T) {
	h := HandFromCards([]Rank{Ace, Six})
	if h.Total != 17 || !h.Soft {
		t.Errorf("A,6 = {%d, soft=%v}, want {17, soft=true}", h.Total, h.Soft)
	}
}

func TestHandAddDemotesSoftAceOnOverflow(t *testing.T) {
	h := HandFromCards([]Rank{Ace, Six, Nine})
	if h.Total != 16 || h.Soft {
		t.Errorf("A,6,9 = {%d, soft=%v}, want {16, soft=false}", h.Total, h.Soft)
	}
}

func TestHandBust(t *testing.T) {
	h := HandFromCards([]Rank{Ten, Nine, Five})
	if !h.Bust() {
		t.Errorf("T,9,5 total %d should bust", h.Total)
	}
}

func TestIsPair(t *testing.T) {
	if r, ok := IsPair([]Rank{Eight, Eight}); !ok || r != Eight {
		t.Errorf("IsPair(8,8) = (%v, %v), want (Eight, true)", r, ok)
	}
	if _, ok := IsPair([]Rank{Eight, Nine}); ok {
		t.Error("IsPair(8,9) = true, want false")
	}
	if _, ok := IsPair([]Rank{Eight, Eight, Eight}); ok {
		t.Error("IsPair on a three-card hand = true, want false")
	}
}

func TestDealerStart(t *testing.T) {
	h := DealerStart(Ace)
	if h.Total != 11 || !h.Soft {
		t.Errorf("DealerStart(Ace) = {%d, soft=%v}, want {11, soft=true}", h.Total, h.Soft)
	}
}
