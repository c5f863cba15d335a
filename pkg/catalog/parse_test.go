package catalog

import (
	"encoding/json"
	"testing"
)

func TestExtractProductCode(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "product detail URL",
			url:  "https://www.lcsc.com/product-detail/USB-Connectors_C48606318.html",
			want: "C48606318",
		},
		{
			name: "lower case code",
			url:  "https://www.lcsc.com/product-detail/c2040.html",
			want: "C2040",
		},
		{
			name: "bare code",
			url:  "C12345",
			want: "C12345",
		},
		{
			name: "first code wins",
			url:  "https://www.lcsc.com/product-detail/C11111.html?ref=C22222",
			want: "C11111",
		},
		{
			name:    "too few digits",
			url:     "https://www.lcsc.com/product-detail/C1234.html",
			wantErr: true,
		},
		{
			name:    "empty URL",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractProductCode(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ExtractProductCode() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ExtractProductCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModelNameFromSVG(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "manufacturer part preferred",
			svg:  "<svg c_para=\"name`U1`Manufacturer Part`RP2040`Value`MCU\"></svg>",
			want: "RP2040",
		},
		{
			name: "name when no manufacturer part",
			svg:  "<svg c_para=\"Value`10k`name`R_0402\"></svg>",
			want: "R_0402",
		},
		{
			name: "value as last resort",
			svg:  "<svg c_para=\"Value`100nF\"></svg>",
			want: "100nF",
		},
		{
			name: "dangling key ignored",
			svg:  "<svg c_para=\"Value`1uF`Manufacturer Part\"></svg>",
			want: "1uF",
		},
		{
			name: "no c_para",
			svg:  "<svg></svg>",
			want: "",
		},
		{
			name: "empty svg",
			svg:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelNameFromSVG(tt.svg); got != tt.want {
				t.Errorf("ModelNameFromSVG() = %q, want %q", got, tt.want)
			}
		})
	}
}

func shapes(t *testing.T, entries ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		raw, err := json.Marshal(e)
		if err != nil {
			t.Fatalf("marshal shape: %v", err)
		}
		out = append(out, raw)
	}
	return out
}

func TestFind3DModel(t *testing.T) {
	outline := func(attrs string) string { return `SVGNODE~{"attrs":` + attrs + `}` }

	tests := []struct {
		name   string
		ds     *DataStr
		want   *Model3D
		wantOK bool
	}{
		{
			name:   "nil document",
			ds:     nil,
			wantOK: false,
		},
		{
			name: "outline with title",
			ds: &DataStr{Shape: shapes(t,
				"TRACK~1~2",
				outline(`{"c_etype":"outline3D","uuid":"abc","title":"SOT-23-3"}`),
			)},
			want:   &Model3D{UUID: "abc", Title: "SOT-23-3"},
			wantOK: true,
		},
		{
			name: "title from head 3DModel",
			ds: &DataStr{
				Head:  Head{CPara: map[string]string{"3DModel": "QFN-56", "package": "QFN56"}},
				Shape: shapes(t, outline(`{"c_etype":"outline3D","uuid":"u1"}`)),
			},
			want:   &Model3D{UUID: "u1", Title: "QFN-56"},
			wantOK: true,
		},
		{
			name: "title from head package",
			ds: &DataStr{
				Head:  Head{CPara: map[string]string{"package": "0402"}},
				Shape: shapes(t, outline(`{"c_etype":"outline3D","uuid":"u2"}`)),
			},
			want:   &Model3D{UUID: "u2", Title: "0402"},
			wantOK: true,
		},
		{
			name:   "default title",
			ds:     &DataStr{Shape: shapes(t, outline(`{"c_etype":"outline3D","uuid":"u3"}`))},
			want:   &Model3D{UUID: "u3", Title: "model"},
			wantOK: true,
		},
		{
			name: "skips broken and non-string entries",
			ds: &DataStr{Shape: shapes(t,
				42,
				map[string]string{"k": "v"},
				"SVGNODE~{not json",
				outline(`{"c_etype":"outline3D"}`),
				outline(`{"c_etype":"outline3D","uuid":"ok"}`),
			)},
			want:   &Model3D{UUID: "ok", Title: "model"},
			wantOK: true,
		},
		{
			name:   "no outline",
			ds:     &DataStr{Shape: shapes(t, outline(`{"c_etype":"silkscreen","uuid":"x"}`))},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Find3DModel(tt.ds)
			if ok != tt.wantOK {
				t.Fatalf("Find3DModel() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if *got != *tt.want {
				t.Errorf("Find3DModel() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestViewerURL(t *testing.T) {
	got := ViewerURL(Model3D{UUID: "0a1b", Title: "SOT-23 (3P)/x"})
	want := "https://easyeda.com/editor/6.5.51/htm/editorpage15.html?version=6.5.51&url=/analyzer/api/3dmodel/0a1b/SOT-23%20(3P)%2Fx.obj"
	if got != want {
		t.Errorf("ViewerURL() =\n%s\nwant\n%s", got, want)
	}
}
