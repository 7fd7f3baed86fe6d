package face

// FeatureMap describes one detector output grid.
type FeatureMap struct {
	GridSize       int `yaml:"GridSize" json:"grid_size"`
	Stride         int `yaml:"Stride" json:"stride"`
	AnchorsPerCell int `yaml:"AnchorsPerCell" json:"anchors_per_cell"`
}

// DefaultFeatureMaps are the BlazeFace short range grids for a 128 px input.
var DefaultFeatureMaps = []FeatureMap{
	{GridSize: 16, Stride: 8, AnchorsPerCell: 2},
	{GridSize: 8, Stride: 16, AnchorsPerCell: 6},
}

// Anchor is a reference box in normalized model input space.
type Anchor struct {
	CX float64
	CY float64
	W  float64
	H  float64
}

// Anchors is the ordered anchor sequence, aligned index for index with the
// detector regression and classification outputs.
type Anchors []Anchor

// AnchorCount returns the number of anchors the feature maps produce.
func AnchorCount(maps []FeatureMap) int {
	n := 0

	for _, m := range maps {
		n += m.GridSize * m.GridSize * m.AnchorsPerCell
	}

	return n
}

// NewAnchors generates the anchors by feature map, then row, column and slot.
func NewAnchors(maps []FeatureMap, targetSize int) Anchors {
	result := make(Anchors, 0, AnchorCount(maps))

	if targetSize <= 0 {
		return result
	}

	t := float64(targetSize)

	for _, m := range maps {
		stride := float64(m.Stride)
		size := stride / t

		for y := 0; y < m.GridSize; y++ {
			cy := (float64(y) + 0.5) * stride / t

			for x := 0; x < m.GridSize; x++ {
				cx := (float64(x) + 0.5) * stride / t

				for i := 0; i < m.AnchorsPerCell; i++ {
					result = append(result, Anchor{CX: cx, CY: cy, W: size, H: size})
				}
			}
		}
	}

	return result
}
