package cv

import (
	"gocv.io/x/gocv"
)

// CalCcoeffConfidence 使用 TM_CCOEFF_NORMED 计算置信度 [-1, 1]
// imgSearch 不得大于 imgSource；尺寸相同时结果矩阵为 1x1
func CalCcoeffConfidence(imgSource, imgSearch gocv.Mat) float64 {
	srcGray := ToGray(imgSource)
	searchGray := ToGray(imgSearch)
	defer srcGray.Close()
	defer searchGray.Close()

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(srcGray, searchGray, &result, gocv.TmCcoeffNormed, mask)

	_, maxVal, _, _ := gocv.MinMaxLoc(result)
	return float64(maxVal)
}
