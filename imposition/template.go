package imposition

// zineTemplate 是八页骑马钉折页的固定拼版表（0 起始的原稿页序号）。
// 上排四格倒置，折叠裁切后所有页面方向一致。
var zineTemplate = [PageCount]Slot{
	{Source: 4, Rotation: UpsideDown},
	{Source: 3, Rotation: UpsideDown},
	{Source: 2, Rotation: UpsideDown},
	{Source: 1, Rotation: UpsideDown},
	{Source: 5, Rotation: Upright},
	{Source: 6, Rotation: Upright},
	{Source: 7, Rotation: Upright},
	{Source: 0, Rotation: Upright},
}

// Template returns a copy of the fixed imposition table, indexed by output slot.
func Template() [PageCount]Slot { return zineTemplate }
