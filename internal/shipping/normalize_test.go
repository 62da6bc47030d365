package shipping

import (
	"errors"
	"fmt"
	"testing"
)

func TestNormalizeOptionsShapeAgnostic(t *testing.T) {
	entries := `[{"id":1,"name":"PAC","price":24.9,"delivery_time":6},{"id":2,"name":"SEDEX","price":12.5,"delivery_time":2}]`

	bodies := map[string]string{
		"services":   fmt.Sprintf(`{"services":%s}`, entries),
		"options":    fmt.Sprintf(`{"options":%s}`, entries),
		"bare array": entries,
	}

	var reference []string
	for shape, body := range bodies {
		options, err := NormalizeOptions([]byte(body))
		if err != nil {
			t.Fatalf("%s: NormalizeOptions returned error: %v", shape, err)
		}
		if len(options) != 2 {
			t.Fatalf("%s: expected 2 options, got %d", shape, len(options))
		}

		var got []string
		for _, o := range options {
			got = append(got, fmt.Sprintf("%s/%s/%d/%s", o.ID, o.Name, o.Price, o.Deadline))
		}
		if reference == nil {
			reference = got
			continue
		}
		for i := range reference {
			if got[i] != reference[i] {
				t.Errorf("%s: option %d = %s, want %s", shape, i, got[i], reference[i])
			}
		}
	}

	if reference[0] != "2/SEDEX/1250/Até 2 dias úteis" {
		t.Errorf("unexpected cheapest option: %s", reference[0])
	}
}

func TestNormalizeOptionsDiscountPriority(t *testing.T) {
	body := `{"services":[{"id":"1","name":"PAC","price_with_discount":50,"price":80}]}`

	options, err := NormalizeOptions([]byte(body))
	if err != nil {
		t.Fatalf("NormalizeOptions returned error: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	if options[0].Price != 5000 {
		t.Errorf("expected price 5000, got %d", options[0].Price)
	}
	if options[0].OriginalPrice != 8000 {
		t.Errorf("expected original price 8000, got %d", options[0].OriginalPrice)
	}
}

func TestNormalizeOptionsNoDiscountMeansNoOriginal(t *testing.T) {
	body := `{"services":[{"id":"1","name":"PAC","price":80}]}`

	options, err := NormalizeOptions([]byte(body))
	if err != nil {
		t.Fatalf("NormalizeOptions returned error: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	if options[0].OriginalPrice != 0 {
		t.Errorf("expected no original price, got %d", options[0].OriginalPrice)
	}
}

func TestNormalizeOptionsRejectsReversedDiscount(t *testing.T) {
	body := `{"services":[{"id":"1","name":"PAC","price_with_discount":80,"original_price":50}]}`

	options, err := NormalizeOptions([]byte(body))
	if err != nil {
		t.Fatalf("NormalizeOptions returned error: %v", err)
	}
	if options[0].OriginalPrice != 0 {
		t.Errorf("reversed discount must not be kept, got original %d", options[0].OriginalPrice)
	}
}

func TestNormalizeOptionsDropsInvalidPrices(t *testing.T) {
	body := `{"services":[
		{"id":"1","name":"Free","price":0},
		{"id":"2","name":"Negative","price":-10},
		{"id":"3","name":"Text","price":"not-a-number"},
		{"id":"4","name":"Missing"},
		{"id":"5","name":"Valid","price":19.9}
	]}`

	options, err := NormalizeOptions([]byte(body))
	if err != nil {
		t.Fatalf("NormalizeOptions returned error: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	if options[0].ID != "5" || options[0].Price != 1990 {
		t.Errorf("unexpected surviving option: %+v", options[0])
	}
}

func TestNormalizeOptionsStableSort(t *testing.T) {
	body := `[
		{"id":"A","name":"A","price":80},
		{"id":"B","name":"B","price":50},
		{"id":"C","name":"C","price":50},
		{"id":"D","name":"D","price":120}
	]`

	options, err := NormalizeOptions([]byte(body))
	if err != nil {
		t.Fatalf("NormalizeOptions returned error: %v", err)
	}

	want := []string{"B", "C", "A", "D"}
	if len(options) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(options))
	}
	for i, id := range want {
		if options[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, options[i].ID)
		}
	}
}

func TestNormalizeOptionsDeadline(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "numeric delivery_time",
			body: `[{"id":"1","price":10,"delivery_time":6}]`,
			want: "Até 6 dias úteis",
		},
		{
			name: "numeric deadline alias",
			body: `[{"id":"1","price":10,"deadline":3}]`,
			want: "Até 3 dias úteis",
		},
		{
			name: "non-numeric falls back to raw string",
			body: `[{"id":"1","price":10,"deadline":"2 a 5 dias"}]`,
			want: "2 a 5 dias",
		},
		{
			name: "absent deadline is empty",
			body: `[{"id":"1","price":10}]`,
			want: "",
		},
		{
			name: "zero days falls back to raw",
			body: `[{"id":"1","price":10,"delivery_time":0}]`,
			want: "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			options, err := NormalizeOptions([]byte(tc.body))
			if err != nil {
				t.Fatalf("NormalizeOptions returned error: %v", err)
			}
			if len(options) != 1 {
				t.Fatalf("expected 1 option, got %d", len(options))
			}
			if options[0].Deadline != tc.want {
				t.Errorf("deadline = %q, want %q", options[0].Deadline, tc.want)
			}
		})
	}
}

func TestNormalizeOptionsFieldAliases(t *testing.T) {
	body := `[{"service_id":17,"service_name":"Mini Envios","total":"7.85","posting":"agencia","time":"4"}]`

	options, err := NormalizeOptions([]byte(body))
	if err != nil {
		t.Fatalf("NormalizeOptions returned error: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}

	got := options[0]
	if got.ID != "17" {
		t.Errorf("expected id 17, got %s", got.ID)
	}
	if got.Name != "Mini Envios" {
		t.Errorf("expected name Mini Envios, got %s", got.Name)
	}
	if got.Price != 785 {
		t.Errorf("expected price 785, got %d", got.Price)
	}
	if got.PostingType != "agencia" {
		t.Errorf("expected posting agencia, got %s", got.PostingType)
	}
	if got.Deadline != "Até 4 dias úteis" {
		t.Errorf("unexpected deadline %q", got.Deadline)
	}
}

func TestNormalizeOptionsNameFallback(t *testing.T) {
	body := `[{"id":"9","price":15}]`

	options, err := NormalizeOptions([]byte(body))
	if err != nil {
		t.Fatalf("NormalizeOptions returned error: %v", err)
	}
	if options[0].Name != "Frete" {
		t.Errorf("expected fallback name Frete, got %s", options[0].Name)
	}
}

func TestNormalizeOptionsUnrecognisedShapeIsEmpty(t *testing.T) {
	options, err := NormalizeOptions([]byte(`{"message":"no rates"}`))
	if err != nil {
		t.Fatalf("NormalizeOptions returned error: %v", err)
	}
	if len(options) != 0 {
		t.Fatalf("expected empty list, got %d options", len(options))
	}
}

func TestNormalizeOptionsMalformedJSON(t *testing.T) {
	_, err := NormalizeOptions([]byte(`{not json`))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}
