package importer

// Sheet and column names of the underwriting rule workbook template. The
// template is maintained by the actuarial side in Chinese; the names below are
// the contract and must match the uploaded file exactly.
const (
	SheetDisease    = "疾病"
	SheetQuestion   = "问题"
	SheetConclusion = "结论"
)

const (
	colDiseaseName          = "疾病"
	colDiseaseCode          = "疾病编码"
	colDiseaseCategoryCode  = "疾病大类编码"
	colDiseaseCategoryName  = "疾病大类"
	colDiseaseFirstQuestion = "疾病第一个问题编码"
	colDiseaseRemark        = "备注（疾病解释）"
	colDiseaseIsCommon      = "是否为常见疾病0：否，1：是"

	colQuestionCode      = "问题编码"
	colQuestionContent   = "问题内容"
	colQuestionAttribute = "问题属性 P:普通问题 G:归类问题"
	colQuestionArity     = "问题类型 1-单选 0-多选 2-录入问题"
	colQuestionRemark    = "备注（问题解释）"

	colAnswerQuestionCode = "问题编码"
	colAnswerContent      = "8答案内容"
	colAnswerCritical     = "10重疾结论"
	colAnswerCriticalCode = "11重疾特殊编码"
	colAnswerCriticalDesc = "12重疾特殊描述"
	colAnswerMedical      = "15医疗险结论"
	colAnswerMedicalCode  = "16医疗特殊编码"
	colAnswerMedicalDesc  = "17医疗特殊描述"
	colAnswerNext         = "19对应下一个问题编码（结束为空）"
	colAnswerOrder        = "23答案展示顺序"
	colAnswerRemark       = "24备注（答案的解释）"
)

// TemplateSheets declares the required sheets of the rule workbook. Every
// sheet carries a description row beneath the header, declared here
// explicitly instead of sniffed from cell contents.
func TemplateSheets() []SheetSpec {
	return []SheetSpec{
		{
			Name: SheetDisease,
			Required: []string{
				colDiseaseName,
				colDiseaseCode,
				colDiseaseCategoryCode,
				colDiseaseCategoryName,
				colDiseaseFirstQuestion,
			},
			Optional:       []string{colDiseaseRemark, colDiseaseIsCommon},
			DescriptionRow: true,
		},
		{
			Name: SheetQuestion,
			Required: []string{
				colQuestionCode,
				colQuestionContent,
				colQuestionAttribute,
				colQuestionArity,
			},
			Optional:       []string{colQuestionRemark},
			DescriptionRow: true,
		},
		{
			Name: SheetConclusion,
			Required: []string{
				colAnswerQuestionCode,
				colAnswerContent,
				colAnswerCritical,
				colAnswerCriticalCode,
				colAnswerCriticalDesc,
				colAnswerMedical,
				colAnswerMedicalCode,
				colAnswerMedicalDesc,
				colAnswerNext,
				colAnswerOrder,
			},
			Optional:       []string{colAnswerRemark},
			DescriptionRow: true,
		},
	}
}
