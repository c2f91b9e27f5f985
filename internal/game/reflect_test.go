package game

import "testing"

var allKinds = []PieceKind{Laser, Queen, Switch, Defender, Deflector}
var allFacings = []Orientation{FacingN, FacingE, FacingS, FacingW}
var allDirections = []Direction{DirN, DirE, DirS, DirW}

func TestReflectionTablesAreTotal(t *testing.T) {
	for _, kind := range allKinds {
		for _, facing := range allFacings {
			for _, dir := range allDirections {
				out := Resolve(kind, facing, dir)
				switch out.Kind {
				case Absorb:
				case Reflect:
					if out.Dir > DirW {
						t.Fatalf("Resolve(%s, %s, %s) reflected into invalid direction %d", kind, facing, dir, out.Dir)
					}
				default:
					t.Fatalf("Resolve(%s, %s, %s) returned unknown outcome kind %d", kind, facing, dir, out.Kind)
				}
			}
		}
	}
}

func TestQueenAbsorbsFromEveryDirection(t *testing.T) {
	for _, facing := range allFacings {
		for _, dir := range allDirections {
			if out := Resolve(Queen, facing, dir); out.Kind != Absorb {
				t.Fatalf("queen facing %s survived a beam from %s", facing, dir)
			}
		}
	}
}

func TestSwitchReflectsEveryDirection(t *testing.T) {
	tests := []struct {
		facing Orientation
		want   map[Direction]Direction
	}{
		{
			// '/' mirror
			facing: FacingN,
			want:   map[Direction]Direction{DirN: DirE, DirE: DirN, DirS: DirW, DirW: DirS},
		},
		{
			// '\' mirror
			facing: FacingE,
			want:   map[Direction]Direction{DirN: DirW, DirE: DirS, DirS: DirE, DirW: DirN},
		},
		{
			facing: FacingS,
			want:   map[Direction]Direction{DirN: DirE, DirE: DirN, DirS: DirW, DirW: DirS},
		},
		{
			facing: FacingW,
			want:   map[Direction]Direction{DirN: DirW, DirE: DirS, DirS: DirE, DirW: DirN},
		},
	}
	for _, tt := range tests {
		for _, in := range allDirections {
			out := Resolve(Switch, tt.facing, in)
			if out.Kind != Reflect {
				t.Fatalf("switch facing %s absorbed a beam from %s", tt.facing, in)
			}
			if out.Dir != tt.want[in] {
				t.Fatalf("switch facing %s: beam %s reflected to %s, want %s", tt.facing, in, out.Dir, tt.want[in])
			}
		}
	}
}

func TestDefenderShieldBouncesBeamBack(t *testing.T) {
	for _, facing := range allFacings {
		headOn := facing.Direction().Opposite()
		for _, in := range allDirections {
			out := Resolve(Defender, facing, in)
			if in == headOn {
				if out.Kind != Reflect || out.Dir != in.Opposite() {
					t.Fatalf("defender facing %s: head-on beam from %s got %+v, want bounce to %s", facing, in, out, in.Opposite())
				}
				continue
			}
			if out.Kind != Absorb {
				t.Fatalf("defender facing %s survived a beam from %s", facing, in)
			}
		}
	}
}

func TestDeflectorSingleMirroredFace(t *testing.T) {
	tests := []struct {
		facing  Orientation
		reflect map[Direction]Direction
	}{
		{facing: FacingN, reflect: map[Direction]Direction{DirE: DirN, DirS: DirW}},
		{facing: FacingE, reflect: map[Direction]Direction{DirS: DirE, DirW: DirN}},
		{facing: FacingS, reflect: map[Direction]Direction{DirW: DirS, DirN: DirE}},
		{facing: FacingW, reflect: map[Direction]Direction{DirN: DirW, DirE: DirS}},
	}
	for _, tt := range tests {
		for _, in := range allDirections {
			out := Resolve(Deflector, tt.facing, in)
			want, mirrored := tt.reflect[in]
			if mirrored {
				if out.Kind != Reflect || out.Dir != want {
					t.Fatalf("deflector facing %s: beam %s got %+v, want reflect to %s", tt.facing, in, out, want)
				}
				continue
			}
			if out.Kind != Absorb {
				t.Fatalf("deflector facing %s: beam %s should hit the unmirrored face", tt.facing, in)
			}
		}
	}
}

func TestRotationComposition(t *testing.T) {
	for _, o := range allFacings {
		if o.CW().CW() != o.Turned(2) {
			t.Fatalf("two quarter turns from %s != half turn", o)
		}
		if o.Turned(4) != o {
			t.Fatalf("full turn from %s does not wrap", o)
		}
	}
	// Rotating a piece twice must be indistinguishable from one 180
	// degree rotation in every table lookup.
	for _, kind := range allKinds {
		for _, o := range allFacings {
			for _, in := range allDirections {
				twice := Resolve(kind, o.CW().CW(), in)
				half := Resolve(kind, o.Turned(2), in)
				if twice != half {
					t.Fatalf("%s: CW twice from %s differs from half turn for beam %s", kind, o, in)
				}
			}
		}
	}
}
