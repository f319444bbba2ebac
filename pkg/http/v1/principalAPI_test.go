package v1

import (
	"reflect"
	"testing"

	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
)

func TestMissingMozeKeys(t *testing.T) {
	found := []types.Moze{
		{Key: "houston-north"},
		{Key: "houston-south"},
	}

	if missing := missingMozeKeys([]string{"houston-north", "houston-south"}, found); len(missing) != 0 {
		t.Errorf("expected no missing keys, got %v", missing)
	}

	missing := missingMozeKeys([]string{"houston-north", "dallas-east"}, found)
	if !reflect.DeepEqual(missing, []string{"dallas-east"}) {
		t.Errorf("missing = %v, want [dallas-east]", missing)
	}

	if missing := missingMozeKeys([]string{"dallas-east"}, nil); !reflect.DeepEqual(missing, []string{"dallas-east"}) {
		t.Errorf("missing = %v, want [dallas-east]", missing)
	}
}
