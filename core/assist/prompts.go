package assist

import (
	"fmt"
	"strings"

	"github.com/sahyadri/classai/core/student"
	"github.com/sahyadri/classai/core/textbook"
)

func engagementPrompt(roster []student.Student) string {
	var b strings.Builder
	b.WriteString(`You are an AI assistant that analyzes student engagement levels from classroom snapshots and recognizes students.

Analyze the first provided image, a classroom snapshot, to identify student faces, recognize them against the known students listed below, and classify their engagement levels.
Each subsequent image is the reference photo of a known student, in the order listed.
For each detected face, determine if it matches any known student by comparing the face in the snapshot with the reference photos.
If a match is found, include the student's id and name in the output; otherwise leave "student_id" and "student_name" empty.

Determine for each student, based on their facial expression and body language, if they are attentive, distracted, or confused.

Respond with a JSON object of the form:
{"student_engagements": [{"student_id": "...", "student_name": "...", "engagement_level": "attentive|distracted|confused"}]}

Known Students:
`)
	for _, st := range roster {
		fmt.Fprintf(&b, "- Student ID: %s, Name: %s\n", st.ID, st.Name)
	}
	return b.String()
}

func lessonPlanPrompt(req LessonPlanRequest, englishURL, kannadaURL string) string {
	var b strings.Builder
	b.WriteString(`You are an expert lesson plan creator for elementary school teachers in Karnataka, India.

Your task is to generate a detailed, day-by-day lesson plan based on the provided information. The plan must be structured to cover the specified chapter over the given duration.
For each day, provide clear and concise lists for learning objectives, teaching activities, required resources, and assessment/homework.
Base the content on the provided textbook URLs.

Input Information:
`)
	fmt.Fprintf(&b, "- Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "- Grade: %d\n", req.Grade)
	fmt.Fprintf(&b, "- Chapter Name: %s\n", req.ChapterName)
	fmt.Fprintf(&b, "- Duration: %d days\n", req.Duration)
	fmt.Fprintf(&b, "- English Textbook URL: %s\n", englishURL)
	fmt.Fprintf(&b, "- Kannada Textbook URL: %s\n", kannadaURL)
	b.WriteString(`- Educational Board: Karnataka State Board

Respond with a JSON object of the form, ensuring "grade" is a number:
{"board": "...", "grade": 0, "subject": "...", "lesson_name": "...", "daily_breakdown": [{"day": "Day 1 - Introduction to Topic", "learning_objectives": ["..."], "teaching_activities": ["..."], "learning_resources": ["..."], "assessment_homework": ["..."]}]}

Create one "daily_breakdown" object for each day of the specified duration. Generate the complete lesson plan now.
`)
	return b.String()
}

func handoutPrompt(req HandoutRequest, englishURL, kannadaURL string) string {
	var b strings.Builder
	b.WriteString(`You are an expert educational content creator for young students in Karnataka, India. You are fluent in both English and Kannada.

Your task is to create a detailed, engaging, and bilingual (English and Kannada) handout for a student who is struggling with a specific topic. The handout should be based on the provided textbook content from both English and Kannada textbook URLs.

Student Information:
`)
	fmt.Fprintf(&b, "- Name: %s\n", req.StudentName)
	fmt.Fprintf(&b, "- Engagement History: %s\n", req.EngagementHistory)
	fmt.Fprintf(&b, "- Topic: %s\n\n", req.Topic)
	b.WriteString("Source Material:\nUse the content from the following textbook URLs as the primary source of truth for the chapter's content. Use both to create accurate bilingual content.\n")
	fmt.Fprintf(&b, "- English Textbook URL: %s\n", englishURL)
	fmt.Fprintf(&b, "- Kannada Textbook URL: %s\n\n", kannadaURL)
	b.WriteString(`Instructions:
For every field requiring bilingual content, you MUST provide a version in both English and a phonetically accurate, grammatically correct Kannada translation.

Respond with a JSON object with these fields (bilingual fields are {"english": "...", "kannada": "..."}):
1. "chapter_title": the title of the chapter.
2. "proverb": a simple, inspiring proverb or motto related to the chapter's theme.
3. "learning_objective": a concise and creative explanation of what the chapter is about.
4. "key_vocabulary": a list of important words from the chapter, each {"word": "...", "english_explanation": "...", "kannada_explanation": "..."}.
5. "opening_activity": a simple and engaging opening activity or question for the student.
6. "concept_explanation": explain the core concepts in an interesting and engaging way, perhaps using a simple story or a relatable analogy. Focus on providing maximum clarity on the basics.
7. "hands_on_activities": 2-3 simple, interesting, hands-on activities, each {"title": {...}, "description": {...}, "image_prompt": "..."} where "image_prompt" is a detailed prompt for an AI image generator to create a visual aid for the activity.
8. "assessment_questions": 10-15 assessment questions covering all the key content from the chapter.
9. "conclusion": a strong conclusion that emphasizes the importance of the chapter in the student's real life and its potential future impact, inspiring a sense of seriousness and curiosity.

Ensure all Kannada text is accurate and appropriate for a young learner.
`)
	return b.String()
}

func blackboardPrompt(req BlackboardRequest) string {
	return fmt.Sprintf(`A visually engaging and well-structured blackboard layout for a lesson on "%s". The style should be a simple chalk sketch drawing on a dark chalkboard. The layout must be clear, easy to read, and suitable for a teacher to replicate.

Incorporate the following key elements from the lesson description:
%s

The final image should have distinct sections for different concepts, use simple sketches or diagrams without text labels, and have clear, legible handwriting-style text for the main content. Do not include any human figures or hands in the image.`,
		req.LessonTopic, req.LessonDescription)
}

func contextSelectionPrompt(question string, contexts []textbook.UniqueSubjectGrade) string {
	var b strings.Builder
	b.WriteString(`You are an expert at routing student questions.

First, determine if the user's question is academic and requires a textbook to answer, or if it's a general greeting or conversational question.

If it is academic, determine the single most appropriate subject and grade from the list of available options.

Available Subject and Grade Contexts:
`)
	for _, c := range contexts {
		fmt.Fprintf(&b, "- Subject: %s, Grade: %d\n", c.Subject, c.Grade)
	}
	fmt.Fprintf(&b, "\nUser Question: %q\n\n", question)
	b.WriteString(`Select the best subject and grade from the list if the question is academic. Do not make up a subject or grade that is not in the provided list.
Respond with a JSON object of the form:
{"is_academic": true, "subject": "...", "grade": 0, "reasoning": "..."}
`)
	return b.String()
}

func chatHistory(b *strings.Builder, history []ChatMessage) {
	if len(history) == 0 {
		return
	}
	b.WriteString("Here is the history of our conversation so far:\n")
	for _, msg := range history {
		fmt.Fprintf(b, "%s: %s\n", msg.Role, msg.Content)
	}
	b.WriteString("\n")
}

func answerPrompt(question string, tb textbook.Textbook, history []ChatMessage) string {
	var b strings.Builder
	b.WriteString("You are a friendly and helpful teaching assistant for young students in Karnataka, India. Your role is to answer student questions clearly and simply.\n\n")
	fmt.Fprintf(&b, "You MUST base your answers strictly on the content of the two attached Grade %d %s textbooks (English first, then Kannada). Do not use any external knowledge. If the answer is not in the textbooks, say %q\n\n",
		tb.Grade, tb.Subject, "I can't find the answer to that in the textbook. Please ask your teacher for help.")
	chatHistory(&b, history)
	fmt.Fprintf(&b, "Now, please answer the following question:\nQuestion: %s\n\n", question)
	b.WriteString("Respond with a JSON object of the form: {\"answer\": \"...\"}\n")
	return b.String()
}

func conversationalPrompt(question string, history []ChatMessage) string {
	var b strings.Builder
	b.WriteString("You are a friendly and helpful teaching assistant chatbot named Knowledge Hub. Answer the following question conversationally.\n\n")
	chatHistory(&b, history)
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	b.WriteString("Respond with a JSON object of the form: {\"answer\": \"...\"}\n")
	return b.String()
}
