package ephemeris

import (
	"math"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
)

// Mean orbital elements, each linear in d (days since the J2000-adjacent
// epoch). N: longitude of the ascending node, i: inclination, w: argument of
// perihelion, a: semi-major axis (au; Earth radii for the Moon), e:
// eccentricity, M: mean anomaly. All angles in degrees.
type elements struct {
	N0, Nd float64
	I0, Id float64
	W0, Wd float64
	A      float64
	E0, Ed float64
	M0, Md float64
}

var planetElements = map[astro.Body]elements{
	astro.Mercury: {48.3313, 3.24587e-5, 7.0047, 5.00e-8, 29.1241, 1.01444e-5, 0.387098, 0.205635, 5.59e-10, 168.6562, 4.0923344368},
	astro.Venus:   {76.6799, 2.46590e-5, 3.3946, 2.75e-8, 54.8910, 1.38374e-5, 0.723330, 0.006773, -1.302e-9, 48.0052, 1.6021302244},
	astro.Mars:    {49.5574, 2.11081e-5, 1.8497, -1.78e-8, 286.5016, 2.92961e-5, 1.523688, 0.093405, 2.516e-9, 18.6021, 0.5240207766},
	astro.Jupiter: {100.4542, 2.76854e-5, 1.3030, -1.557e-7, 273.8777, 1.64505e-5, 5.20256, 0.048498, 4.469e-9, 19.8950, 0.0830853001},
	astro.Saturn:  {113.6634, 2.38980e-5, 2.4886, -1.081e-7, 339.3939, 2.97661e-5, 9.55475, 0.055546, -9.499e-9, 316.9670, 0.0334442282},
}

var moonElements = elements{125.1228, -0.0529538083, 5.1454, 0, 318.0634, 0.1643573223, 60.2666, 0.054900, 0, 115.3654, 13.0649929509}

var sunElements = elements{0, 0, 0, 0, 282.9404, 4.70935e-5, 1.0, 0.016709, -1.151e-9, 356.0470, 0.9856002585}

func (el elements) at(d float64) (N, i, w, a, e, M float64) {
	return el.N0 + el.Nd*d, el.I0 + el.Id*d, el.W0 + el.Wd*d, el.A, el.E0 + el.Ed*d, astro.NormalizeDeg(el.M0 + el.Md*d)
}

// eclipticAt returns the geocentric ecliptic longitude and latitude of b at
// day count d.
func eclipticAt(d float64, b astro.Body) (lon, lat float64) {
	switch b {
	case astro.Sun:
		lon = sunLongitude(d)
		return lon, 0
	case astro.Moon:
		return moonPosition(d)
	case astro.Rahu:
		return astro.NormalizeDeg(125.1228 - 0.0529538083*d), 0
	case astro.Ketu:
		return astro.NormalizeDeg(305.1228 - 0.0529538083*d), 0
	default:
		return planetPosition(d, b)
	}
}

// sunLongitude returns the geocentric ecliptic longitude of the Sun.
func sunLongitude(d float64) float64 {
	_, _, w, _, e, M := sunElements.at(d)
	v, _ := trueAnomaly(M, e)
	return astro.NormalizeDeg(v + w)
}

// sunRect returns the Sun's geocentric rectangular ecliptic coordinates.
func sunRect(d float64) (x, y float64) {
	_, _, w, _, e, M := sunElements.at(d)
	v, r := trueAnomaly(M, e)
	lon := astro.NormalizeDeg(v + w)
	return r * cosd(lon), r * sind(lon)
}

// moonPosition applies the dominant lunar perturbation terms (evection,
// variation, annual equation and friends) on top of the two-body solution.
func moonPosition(d float64) (lon, lat float64) {
	N, i, w, _, e, Mm := moonElements.at(d)
	v, r := trueAnomaly(Mm, e)
	xh, yh, zh := heliocentric(v, r, N, i, w)
	lon = astro.NormalizeDeg(atan2d(yh, xh))
	lat = atan2d(zh, math.Sqrt(xh*xh+yh*yh))

	Ms := astro.NormalizeDeg(sunElements.M0 + sunElements.Md*d)
	Ls := astro.NormalizeDeg(Ms + sunElements.W0 + sunElements.Wd*d)
	Lm := astro.NormalizeDeg(Mm + w + N)
	D := astro.NormalizeDeg(Lm - Ls) // mean elongation
	F := astro.NormalizeDeg(Lm - N)  // argument of latitude

	lon += -1.274*sind(Mm-2*D) +
		0.658*sind(2*D) -
		0.186*sind(Ms) -
		0.059*sind(2*Mm-2*D) -
		0.057*sind(Mm-2*D+Ms) +
		0.053*sind(Mm+2*D) +
		0.046*sind(2*D-Ms) +
		0.041*sind(Mm-Ms) -
		0.035*sind(D) -
		0.031*sind(Mm+Ms) -
		0.015*sind(2*F-2*D) +
		0.011*sind(Mm-4*D)

	lat += -0.173*sind(F-2*D) -
		0.055*sind(Mm-F-2*D) -
		0.046*sind(Mm+F-2*D) +
		0.033*sind(F+2*D) +
		0.017*sind(2*Mm+F)

	return astro.NormalizeDeg(lon), lat
}

// planetPosition converts a heliocentric planet position to geocentric by
// adding the Sun's geocentric vector.
func planetPosition(d float64, b astro.Body) (lon, lat float64) {
	el := planetElements[b]
	N, i, w, a, e, M := el.at(d)
	v, r := trueAnomaly(M, e)
	xh, yh, zh := heliocentric(v, r*a, N, i, w)

	if b == astro.Jupiter || b == astro.Saturn {
		dLon := jupiterSaturnPerturbation(d, b)
		lonh := astro.NormalizeDeg(atan2d(yh, xh) + dLon)
		rh := math.Sqrt(xh*xh + yh*yh + zh*zh)
		lath := atan2d(zh, math.Sqrt(xh*xh+yh*yh))
		xh = rh * cosd(lonh) * cosd(lath)
		yh = rh * sind(lonh) * cosd(lath)
		zh = rh * sind(lath)
	}

	xs, ys := sunRect(d)
	xg, yg, zg := xh+xs, yh+ys, zh
	lon = astro.NormalizeDeg(atan2d(yg, xg))
	lat = atan2d(zg, math.Sqrt(xg*xg+yg*yg))
	return lon, lat
}

// jupiterSaturnPerturbation returns the main mutual perturbation terms in
// heliocentric longitude, degrees.
func jupiterSaturnPerturbation(d float64, b astro.Body) float64 {
	Mj := astro.NormalizeDeg(planetElements[astro.Jupiter].M0 + planetElements[astro.Jupiter].Md*d)
	Ms := astro.NormalizeDeg(planetElements[astro.Saturn].M0 + planetElements[astro.Saturn].Md*d)
	if b == astro.Jupiter {
		return -0.332*sind(2*Mj-5*Ms-67.6) -
			0.056*sind(2*Mj-2*Ms+21) +
			0.042*sind(3*Mj-5*Ms+21) -
			0.036*sind(Mj-2*Ms) +
			0.022*cosd(Mj-Ms) +
			0.023*sind(2*Mj-3*Ms+52) -
			0.016*sind(Mj-5*Ms-69)
	}
	return 0.812*sind(2*Mj-5*Ms-67.6) -
		0.229*cosd(2*Mj-4*Ms-2) +
		0.119*sind(Mj-2*Ms-3) +
		0.046*sind(2*Mj-6*Ms-69) +
		0.014*sind(Mj-3*Ms+32)
}

// trueAnomaly solves Kepler's equation and returns the true anomaly (degrees)
// and the radius vector in the same unit as the semi-major axis.
func trueAnomaly(M, e float64) (v, r float64) {
	E := M + radToDeg(e*sind(M)*(1+e*cosd(M)))
	for n := 0; n < 20; n++ {
		dE := (E - radToDeg(e*sind(E)) - M) / (1 - e*cosd(E))
		E -= dE
		if math.Abs(dE) < 1e-7 {
			break
		}
	}
	xv := cosd(E) - e
	yv := math.Sqrt(1-e*e) * sind(E)
	v = atan2d(yv, xv)
	r = math.Sqrt(xv*xv + yv*yv)
	return v, r
}

// heliocentric rotates orbital-plane coordinates into ecliptic rectangular
// coordinates.
func heliocentric(v, r, N, i, w float64) (x, y, z float64) {
	x = r * (cosd(N)*cosd(v+w) - sind(N)*sind(v+w)*cosd(i))
	y = r * (sind(N)*cosd(v+w) + cosd(N)*sind(v+w)*cosd(i))
	z = r * sind(v+w) * sind(i)
	return x, y, z
}

func sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosd(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func atan2d(y, x float64) float64 {
	return math.Atan2(y, x) * 180 / math.Pi
}
func radToDeg(r float64) float64 { return r * 180 / math.Pi }
