package imposition

import "golang.org/x/image/draw"

// Options 配置合成阶段，例如缩放算法。
type Options struct {
	Scaler draw.Scaler // 为空时使用 draw.CatmullRom
}

func (o Options) scaler() draw.Scaler {
	if o.Scaler == nil {
		return draw.CatmullRom
	}
	return o.Scaler
}
