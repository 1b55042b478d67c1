package regression

// Municipalities returns population and confirmed case counts for 100
// municipalities.
func Municipalities() []Municipality {
	return []Municipality{
		{441976, 2359}, {309912, 1311}, {35821, 14}, {1064523, 31664},
		{50022, 99}, {94194, 219}, {1118363, 104246}, {766247, 2009},
		{59246, 147}, {96671, 271}, {293166, 5864}, {24842, 63},
		{275797, 3920}, {255611, 670}, {41512, 133}, {75471, 235},
		{34456, 13}, {98014, 312}, {279091, 1299}, {211264, 197},
		{79595, 410}, {168959, 60}, {169312, 791}, {216749, 293},
		{106626, 172}, {150191, 334}, {49265, 189}, {884039, 1675},
		{140857, 179}, {73957, 226}, {244515, 256}, {73131, 36},
		{12603, 7}, {48506, 448}, {50863, 551}, {136575, 1167},
		{136690, 194}, {139017, 24}, {246157, 4046}, {41822, 117},
		{31105, 65}, {402087, 1614}, {740243, 501}, {207791, 151},
		{18121, 218}, {171057, 580}, {359594, 6872}, {152634, 514},
		{30140, 69}, {76103, 2421}, {135252, 510}, {367552, 4688},
		{58093, 163}, {134205, 337}, {12236, 6}, {75847, 230},
		{148942, 1450}, {98733, 960}, {106797, 272}, {813137, 4436},
		{235134, 3393}, {14560, 23}, {315429, 1446}, {289005, 1413},
		{576211, 6947}, {340761, 697}, {287344, 827}, {146912, 356},
		{38384, 89}, {112529, 911}, {35154, 41}, {52997, 167},
		{613572, 2031}, {401093, 1082}, {166448, 87}, {44096, 104},
		{39067, 79}, {100361, 294}, {394099, 872}, {52341, 142},
		{298666, 378}, {90943, 524}, {8125, 14}, {34134, 292},
		{29867, 13}, {43846, 562}, {1254812, 17713}, {33761, 92},
		{169031, 612}, {990827, 15279}, {229676, 1517}, {38409, 777},
		{199770, 666}, {142900, 851}, {155468, 239}, {438265, 1960},
		{37765, 57}, {66980, 63}, {70981, 162}, {504659, 1570},
	}
}
