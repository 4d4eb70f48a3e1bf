package astro

// periodicTerm is one sine term of the longitude series. The argument is
// d*D + m*M + mm*Mm + f*F and the amplitude is in degrees.
type periodicTerm struct {
	d, m, mm, f int
	amplitude   float64
}

// longitudeTerms is the truncated Chapront series: the 25 largest terms,
// good to a few arc-minutes. Terms with m != 0 are scaled by e^|m|.
var longitudeTerms = [...]periodicTerm{
	{0, 0, 1, 0, 6.288774},
	{2, 0, -1, 0, 1.274027},
	{2, 0, 0, 0, 0.658314},
	{0, 0, 2, 0, 0.213618},
	{0, 1, 0, 0, -0.185116},
	{0, 0, 0, 2, -0.114332},
	{2, 0, -2, 0, 0.058793},
	{2, -1, -1, 0, 0.057066},
	{2, 0, 1, 0, 0.053322},
	{2, -1, 0, 0, 0.045758},
	{0, 1, -1, 0, -0.040923},
	{1, 0, 0, 0, -0.034720},
	{0, 1, 1, 0, -0.030383},
	{2, 0, 0, -2, 0.015327},
	{0, 0, 1, 2, -0.012528},
	{0, 0, 1, -2, 0.010980},
	{4, 0, -1, 0, 0.010675},
	{0, 0, 3, 0, 0.010034},
	{4, 0, -2, 0, 0.008548},
	{2, 1, -1, 0, -0.007888},
	{2, 1, 0, 0, -0.006766},
	{1, 0, -1, 0, -0.005163},
	{1, 1, 0, 0, 0.004987},
	{2, -1, 1, 0, 0.004036},
	{2, 0, 2, 0, 0.003994},
}
