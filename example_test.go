package coordxform_test

import (
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/tzneal/coordxform"
)

func ExampleFactory_Create() {
	f, _ := coordxform.NewFactory()
	t, _ := f.Create(coordxform.WGS84, coordxform.WebMercator)
	x, y, _, _ := t.Transform(23.57892, 37.94712, 0)
	fmt.Printf("%.2f %.2f\n", x, y)
	// Output: 2624793.37 4571958.33
}

func ExampleComposite_Steps() {
	ntf := coordxform.Datum{
		Name:      "NTF",
		Ellipsoid: coordxform.NewEllipsoidFromAxes("Clarke 1880 (IGN)", 6378249.2, 6356515),
		ToWGS84:   &coordxform.ShiftParameters{Dx: -168, Dy: -60, Dz: 320},
	}
	paris := &coordxform.GeographicCRS{
		Name:          "NTF (Paris)",
		Datum:         ntf,
		PrimeMeridian: coordxform.PrimeMeridian{Name: "Paris", Longitude: 2.5969213, Unit: coordxform.Grad},
		Unit:          coordxform.Grad,
	}
	f, _ := coordxform.NewFactory()
	t, _ := f.Create(paris, coordxform.WGS84)
	for _, s := range t.(*coordxform.Composite).Steps() {
		fmt.Println(s.Transform.Name())
	}
	// Output:
	// Geographic(grad Paris -> degree Greenwich)
	// Geocentric
	// Datum shift(-168,-60,320,0,0,0,0)
	// inverse(Geocentric)
}

func ExampleUTMZone() {
	zone, h, _ := coordxform.UTMZone(s2.LatLngFromDegrees(60, 5))
	utm, _ := coordxform.NewUTMCRS(coordxform.WGS84, zone, h)
	fmt.Println(utm.Name)
	// Output: WGS 84 / UTM zone 32N
}

func ExampleTransformCoords() {
	f, _ := coordxform.NewFactory()
	utm, _ := coordxform.NewUTMCRS(coordxform.WGS84, 31, coordxform.HemisphereNorth)
	t, _ := f.Create(coordxform.WGS84, utm)
	coords := []float64{3, 10, 3, 20}
	_ = coordxform.TransformCoords(t, coords, 2)
	fmt.Printf("%.1f\n", coords)
	// Output: [500000.0 1105412.5 500000.0 2211481.3]
}
