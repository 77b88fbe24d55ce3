// Fixed-point tables for the Oklab and logl1 pipelines.
//
// srgbToLinear maps an 8-bit sRGB sample to linear light in Q16
// (65535 = 1.0). linearToSRGB is sampled every 1/512 of linear light;
// decode interpolates the 7 fractional bits between adjacent entries.
// Matrix rows are Q16 fixed point.

package colorspace

var srgbToLinear = [256]uint16{
	0, 20, 40, 60, 80, 99, 119, 139, 159, 179, 199, 219,
	241, 264, 288, 313, 340, 367, 396, 427, 458, 491, 526, 562,
	599, 637, 677, 718, 761, 805, 851, 898, 947, 997, 1048, 1101,
	1156, 1212, 1270, 1330, 1391, 1453, 1517, 1583, 1651, 1720, 1790, 1863,
	1937, 2013, 2090, 2170, 2250, 2333, 2418, 2504, 2592, 2681, 2773, 2866,
	2961, 3058, 3157, 3258, 3360, 3464, 3570, 3678, 3788, 3900, 4014, 4129,
	4247, 4366, 4488, 4611, 4736, 4864, 4993, 5124, 5257, 5392, 5530, 5669,
	5810, 5953, 6099, 6246, 6395, 6547, 6700, 6856, 7014, 7174, 7335, 7500,
	7666, 7834, 8004, 8177, 8352, 8528, 8708, 8889, 9072, 9258, 9445, 9635,
	9828, 10022, 10219, 10417, 10619, 10822, 11028, 11235, 11446, 11658, 11873, 12090,
	12309, 12530, 12754, 12980, 13209, 13440, 13673, 13909, 14146, 14387, 14629, 14874,
	15122, 15371, 15623, 15878, 16135, 16394, 16656, 16920, 17187, 17456, 17727, 18001,
	18277, 18556, 18837, 19121, 19407, 19696, 19987, 20281, 20577, 20876, 21177, 21481,
	21787, 22096, 22407, 22721, 23038, 23357, 23678, 24002, 24329, 24658, 24990, 25325,
	25662, 26001, 26344, 26688, 27036, 27386, 27739, 28094, 28452, 28813, 29176, 29542,
	29911, 30282, 30656, 31033, 31412, 31794, 32179, 32567, 32957, 33350, 33745, 34143,
	34544, 34948, 35355, 35764, 36176, 36591, 37008, 37429, 37852, 38278, 38706, 39138,
	39572, 40009, 40449, 40891, 41337, 41785, 42236, 42690, 43147, 43606, 44069, 44534,
	45002, 45473, 45947, 46423, 46903, 47385, 47871, 48359, 48850, 49344, 49841, 50341,
	50844, 51349, 51858, 52369, 52884, 53401, 53921, 54445, 54971, 55500, 56032, 56567,
	57105, 57646, 58190, 58737, 59287, 59840, 60396, 60955, 61517, 62082, 62650, 63221,
	63795, 64372, 64952, 65535,
}

var linearToSRGB = [513]uint16{
	0, 6, 13, 18, 22, 25, 28, 31, 34, 36, 38, 40,
	42, 44, 46, 48, 49, 51, 53, 54, 56, 57, 58, 60,
	61, 62, 64, 65, 66, 67, 68, 70, 71, 72, 73, 74,
	75, 76, 77, 78, 79, 80, 81, 82, 83, 84, 85, 85,
	86, 87, 88, 89, 90, 91, 91, 92, 93, 94, 95, 95,
	96, 97, 98, 98, 99, 100, 101, 101, 102, 103, 103, 104,
	105, 105, 106, 107, 107, 108, 109, 109, 110, 111, 111, 112,
	113, 113, 114, 115, 115, 116, 116, 117, 118, 118, 119, 119,
	120, 120, 121, 122, 122, 123, 123, 124, 124, 125, 126, 126,
	127, 127, 128, 128, 129, 129, 130, 130, 131, 131, 132, 132,
	133, 133, 134, 134, 135, 135, 136, 136, 137, 137, 138, 138,
	139, 139, 140, 140, 141, 141, 142, 142, 143, 143, 144, 144,
	145, 145, 145, 146, 146, 147, 147, 148, 148, 149, 149, 149,
	150, 150, 151, 151, 152, 152, 153, 153, 153, 154, 154, 155,
	155, 155, 156, 156, 157, 157, 158, 158, 158, 159, 159, 160,
	160, 160, 161, 161, 162, 162, 162, 163, 163, 164, 164, 164,
	165, 165, 166, 166, 166, 167, 167, 167, 168, 168, 169, 169,
	169, 170, 170, 170, 171, 171, 172, 172, 172, 173, 173, 173,
	174, 174, 174, 175, 175, 176, 176, 176, 177, 177, 177, 178,
	178, 178, 179, 179, 179, 180, 180, 180, 181, 181, 181, 182,
	182, 183, 183, 183, 184, 184, 184, 185, 185, 185, 186, 186,
	186, 187, 187, 187, 188, 188, 188, 188, 189, 189, 189, 190,
	190, 190, 191, 191, 191, 192, 192, 192, 193, 193, 193, 194,
	194, 194, 195, 195, 195, 195, 196, 196, 196, 197, 197, 197,
	198, 198, 198, 199, 199, 199, 199, 200, 200, 200, 201, 201,
	201, 202, 202, 202, 202, 203, 203, 203, 204, 204, 204, 205,
	205, 205, 205, 206, 206, 206, 207, 207, 207, 207, 208, 208,
	208, 209, 209, 209, 209, 210, 210, 210, 211, 211, 211, 211,
	212, 212, 212, 213, 213, 213, 213, 214, 214, 214, 214, 215,
	215, 215, 216, 216, 216, 216, 217, 217, 217, 217, 218, 218,
	218, 219, 219, 219, 219, 220, 220, 220, 220, 221, 221, 221,
	221, 222, 222, 222, 223, 223, 223, 223, 224, 224, 224, 224,
	225, 225, 225, 225, 226, 226, 226, 226, 227, 227, 227, 227,
	228, 228, 228, 228, 229, 229, 229, 229, 230, 230, 230, 230,
	231, 231, 231, 231, 232, 232, 232, 232, 233, 233, 233, 233,
	234, 234, 234, 234, 235, 235, 235, 235, 236, 236, 236, 236,
	237, 237, 237, 237, 238, 238, 238, 238, 239, 239, 239, 239,
	239, 240, 240, 240, 240, 241, 241, 241, 241, 242, 242, 242,
	242, 243, 243, 243, 243, 243, 244, 244, 244, 244, 245, 245,
	245, 245, 246, 246, 246, 246, 246, 247, 247, 247, 247, 248,
	248, 248, 248, 249, 249, 249, 249, 249, 250, 250, 250, 250,
	251, 251, 251, 251, 251, 252, 252, 252, 252, 253, 253, 253,
	253, 253, 254, 254, 254, 254, 255, 255, 255,
}

// linear sRGB to LMS
var oklabM1 = [3][3]int32{
	{27015, 35149, 3372},
	{13887, 44610, 7038},
	{5787, 18463, 41286},
}

// nonlinear LMS to Lab (output scaled to Q12)
var oklabM2 = [3][3]int32{
	{13792, 52011, -267},
	{129630, -159160, 29530},
	{1698, 51300, -52997},
}

// Lab to nonlinear LMS
var oklabM2Inv = [3][3]int32{
	{65536, 25974, 14143},
	{65536, -6918, -4185},
	{65536, -5864, -84639},
}

// LMS to linear sRGB
var oklabM1Inv = [3][3]int32{
	{267173, -216774, 15137},
	{-83128, 171033, -22369},
	{-275, -46099, 111910},
}

// orthonormal RGB basis, luma along (1,1,1)
var logl1Fwd = [3][3]int32{
	{37837, 37837, 37837},
	{46341, 0, -46341},
	{26755, -53510, 26755},
}

// transpose of logl1Fwd
var logl1Inv = [3][3]int32{
	{37837, 46341, 26755},
	{37837, 0, -53510},
	{37837, -46341, 26755},
}
